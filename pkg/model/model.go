package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/notjagan/pokerank/pkg/chart"
)

// Model reads the type chart out of a PokeAPI sqlite database.
type Model struct {
	db *sqlx.DB

	Language *Language
}

func New(ctx context.Context, dbPath string) (*Model, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to read from database: %w", err)
	}
	return &Model{db: db}, nil
}

func (m *Model) Close() error {
	return m.db.Close()
}

var ErrUnsetLanguage = errors.New("model language is nil")

func (m *Model) languageByLocalizationCode(ctx context.Context, code LocalizationCode) (*Language, error) {
	lang := Language{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, iso639
		FROM pokemon_v2_language
		WHERE iso639 = ?
	`, code).StructScan(&lang)
	if err != nil {
		return nil, fmt.Errorf("localization code %q not found: %w", code, err)
	}
	return &lang, nil
}

func (m *Model) SetLanguageByLocalizationCode(ctx context.Context, code LocalizationCode) error {
	lang, err := m.languageByLocalizationCode(ctx, code)
	if err != nil {
		return fmt.Errorf("error while getting language: %w", err)
	}
	m.Language = lang

	return nil
}

func (m *Model) GenerationByID(ctx context.Context, id int) (*Generation, error) {
	gen := Generation{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, name
		FROM pokemon_v2_generation
		WHERE id = ?
	`, id).StructScan(&gen)
	if err != nil {
		return nil, fmt.Errorf("generation %d not found: %w", id, err)
	}

	return &gen, nil
}

func (m *Model) LatestGeneration(ctx context.Context) (*Generation, error) {
	gen := Generation{model: m}
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT id, name
		FROM pokemon_v2_generation
		ORDER BY id DESC
		LIMIT 1
	`).StructScan(&gen)
	if err != nil {
		return nil, fmt.Errorf("could not get latest generation: %w", err)
	}

	return &gen, nil
}

func (m *Model) generationTypes(ctx context.Context, gen *Generation) ([]Type, error) {
	var types []Type
	err := m.db.SelectContext(ctx, &types,
		/* sql */ `
		SELECT id, generation_id, name
		FROM pokemon_v2_type
		WHERE generation_id <= ? AND id < ?
		ORDER BY id ASC
	`, gen.ID, nonBattleTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("error while getting types for generation %q: %w", gen.Name, err)
	}

	for i := range types {
		types[i].model = m
	}

	return types, nil
}

func (m *Model) localizedTypeName(ctx context.Context, typ *Type) (string, error) {
	if m.Language == nil {
		return "", ErrUnsetLanguage
	}

	var name string
	err := m.db.QueryRowxContext(ctx,
		/* sql */ `
		SELECT name
		FROM pokemon_v2_typename
		WHERE type_id = ? AND language_id = ?
	`, typ.ID, m.Language.ID).Scan(&name)
	if err != nil {
		return "", fmt.Errorf(
			"could not find localized name for type %q for language with code %q: %w",
			typ.Name,
			m.Language.ISO639,
			err,
		)
	}

	return name, nil
}

// typeEfficacies returns the damage factors in effect during gen. A past row
// applies up to and including its generation, so the earliest one at or after
// gen overrides the current factor.
func (m *Model) typeEfficacies(ctx context.Context, gen *Generation, types []Type) ([]TypeEfficacy, error) {
	ids := make([]int, len(types))
	for i, typ := range types {
		ids[i] = typ.ID
	}

	query, args, err := sqlx.In(
		/* sql */ `
		SELECT
			te.damage_type_id,
			te.target_type_id,
			COALESCE((
				SELECT tep.damage_factor
				FROM pokemon_v2_typeefficacypast AS tep
				WHERE tep.damage_type_id = te.damage_type_id
					AND tep.target_type_id = te.target_type_id
					AND tep.generation_id >= ?
				ORDER BY tep.generation_id ASC
				LIMIT 1
			), te.damage_factor) AS damage_factor
		FROM pokemon_v2_typeefficacy AS te
		WHERE te.damage_type_id IN (?) AND te.target_type_id IN (?)
		ORDER BY te.damage_type_id, te.target_type_id
	`, gen.ID, ids, ids)
	if err != nil {
		return nil, fmt.Errorf("error while constructing query: %w", err)
	}

	var effs []TypeEfficacy
	err = m.db.SelectContext(ctx, &effs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error while getting type efficacies for generation %q: %w", gen.Name, err)
	}

	for i := range effs {
		effs[i].model = m
	}

	return effs, nil
}

// Chart builds the chart of every battle type introduced up to gen, named in the model language,
// with the matchups that applied in gen.
func (m *Model) Chart(ctx context.Context, gen *Generation) (*chart.Chart, error) {
	types, err := gen.Types(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get types for chart: %w", err)
	}

	names := make([]string, len(types))
	byID := make(map[int]string, len(types))
	for i := range types {
		name, err := types[i].LocalizedName(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get localized name for type %q: %w", types[i].Name, err)
		}
		names[i] = name
		byID[types[i].ID] = name
	}

	effs, err := m.typeEfficacies(ctx, gen, types)
	if err != nil {
		return nil, fmt.Errorf("could not get efficacies for chart: %w", err)
	}

	entries := make([]chart.Entry, 0, len(effs))
	for _, te := range effs {
		if te.EfficacyLevel() == NormalEffective {
			continue
		}
		entries = append(entries, chart.Entry{
			Attack:     byID[te.DamageTypeID],
			Defend:     byID[te.TargetTypeID],
			Multiplier: te.Multiplier(),
		})
	}

	c, err := chart.New(names, entries)
	if err != nil {
		return nil, fmt.Errorf("could not build chart for generation %q: %w", gen.Name, err)
	}

	return c, nil
}
