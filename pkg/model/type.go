package model

import "context"

// PokeAPI numbers the non-battle "unknown" and "shadow" types from 10001.
const nonBattleTypeIDs = 10000

type Type struct {
	model *Model

	ID           int    `db:"id"`
	GenerationID int    `db:"generation_id"`
	Name         string `db:"name"`
}

func (typ *Type) LocalizedName(ctx context.Context) (string, error) {
	return typ.model.localizedTypeName(ctx, typ)
}
