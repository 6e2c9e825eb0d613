package model

import (
	"context"
	"fmt"
)

type Generation struct {
	model *Model

	ID   int    `db:"id"`
	Name string `db:"name"`

	types []Type
}

func (gen *Generation) Types(ctx context.Context) ([]Type, error) {
	if gen.types == nil {
		types, err := gen.model.generationTypes(ctx, gen)
		if err != nil {
			return nil, fmt.Errorf("error while getting types for generation: %w", err)
		}
		gen.types = types
	}

	return gen.types, nil
}
