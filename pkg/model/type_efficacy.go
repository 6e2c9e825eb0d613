package model

import (
	"github.com/notjagan/pokerank/pkg/chart"
)

type EfficacyLevel int

const (
	SuperEffective   EfficacyLevel = 200
	NormalEffective  EfficacyLevel = 100
	NotVeryEffective EfficacyLevel = 50
	Immune           EfficacyLevel = 0
)

type TypeEfficacy struct {
	model *Model

	DamageTypeID int `db:"damage_type_id"`
	TargetTypeID int `db:"target_type_id"`
	DamageFactor int `db:"damage_factor"`
}

func (te *TypeEfficacy) EfficacyLevel() EfficacyLevel {
	return EfficacyLevel(te.DamageFactor)
}

// Multiplier converts the stored percentage into a chart multiplier.
func (te *TypeEfficacy) Multiplier() chart.Multiplier {
	return chart.Multiplier(te.DamageFactor) / 100
}
