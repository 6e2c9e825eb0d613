package chart

import (
	"errors"
	"testing"
)

func TestGen1_Lookup(t *testing.T) {
	c := Gen1()
	if c.Len() != 15 {
		t.Fatalf("Len() = %d, want 15", c.Len())
	}

	tests := []struct {
		attack, defend string
		want           Multiplier
	}{
		{"Water", "Fire", SuperEffective},
		{"Fire", "Water", NotVeryEffective},
		{"Ground", "Flying", Immune},
		{"Ghost", "Psychic", Immune},
		{"Ice", "Fire", Neutral},
		{"Psychic", "Psychic", NotVeryEffective},
		{"Normal", "Normal", Neutral},
		{"Dragon", "Fire", Neutral},
	}
	for _, tt := range tests {
		attack, err := c.TypeByName(tt.attack)
		if err != nil {
			t.Fatalf("TypeByName(%q): %v", tt.attack, err)
		}
		defend, err := c.TypeByName(tt.defend)
		if err != nil {
			t.Fatalf("TypeByName(%q): %v", tt.defend, err)
		}
		got, err := c.Lookup(attack, defend)
		if err != nil {
			t.Fatalf("Lookup(%s, %s): %v", tt.attack, tt.defend, err)
		}
		if got != tt.want {
			t.Errorf("Lookup(%s, %s) = %v, want %v", tt.attack, tt.defend, got, tt.want)
		}
	}
}

func TestChart_IDsFollowUniverseOrder(t *testing.T) {
	c := Gen1()
	for i, typ := range c.Types() {
		if typ.ID != i {
			t.Errorf("Types()[%d].ID = %d", i, typ.ID)
		}
		if typ.Name != Gen1Types[i] {
			t.Errorf("Types()[%d].Name = %q, want %q", i, typ.Name, Gen1Types[i])
		}
	}
}

func TestChart_TypeByNameFoldsCase(t *testing.T) {
	c := Gen1()
	for _, name := range []string{"fire", "FIRE", "Fire", "fIrE"} {
		typ, err := c.TypeByName(name)
		if err != nil {
			t.Fatalf("TypeByName(%q): %v", name, err)
		}
		if typ.Name != "Fire" || typ.ID != 1 {
			t.Errorf("TypeByName(%q) = %+v, want Fire/1", name, typ)
		}
	}

	_, err := c.TypeByName("Fairy")
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("TypeByName(Fairy) err = %v, want ErrInvalidType", err)
	}
}

func TestChart_LookupUnknownType(t *testing.T) {
	c := Gen1()
	fire, _ := c.TypeByName("Fire")

	outside := []Type{
		{ID: 15, Name: "Fairy"},
		{ID: -1, Name: "Fire"},
		{ID: 1, Name: "Water"},
	}
	for _, typ := range outside {
		if _, err := c.Lookup(typ, fire); !errors.Is(err, ErrUnknownType) {
			t.Errorf("Lookup(%+v, Fire) err = %v, want ErrUnknownType", typ, err)
		}
		if _, err := c.Lookup(fire, typ); !errors.Is(err, ErrUnknownType) {
			t.Errorf("Lookup(Fire, %+v) err = %v, want ErrUnknownType", typ, err)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		types   []string
		entries []Entry
		want    error
	}{
		{"empty", nil, nil, ErrEmptyChart},
		{"duplicate name", []string{"Fire", "fire"}, nil, ErrDuplicateTypeName},
		{"unknown attacker", []string{"Fire"}, []Entry{{"Water", "Fire", SuperEffective}}, ErrUnknownType},
		{"unknown defender", []string{"Fire"}, []Entry{{"Fire", "Water", NotVeryEffective}}, ErrUnknownType},
		{"bad multiplier", []string{"Fire"}, []Entry{{"Fire", "Fire", 4}}, ErrInvalidMultiplier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.types, tt.entries)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewCombination(t *testing.T) {
	c := Gen1()
	combo, err := c.Combination("Flying", "fire")
	if err != nil {
		t.Fatalf("Combination: %v", err)
	}
	if combo.String() != "Fire/Flying" {
		t.Errorf("String() = %q, want Fire/Flying", combo.String())
	}
	if ids := combo.IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 9 {
		t.Errorf("IDs() = %v, want [1 9]", ids)
	}

	if _, err := c.Combination("Fire", "Fire"); !errors.Is(err, ErrDuplicateType) {
		t.Errorf("duplicate err = %v, want ErrDuplicateType", err)
	}
	if _, err := c.Combination(); !errors.Is(err, ErrInvalidCombinationSize) {
		t.Errorf("empty err = %v, want ErrInvalidCombinationSize", err)
	}
	if _, err := c.Combination("Fire", "Water", "Grass", "Ice"); !errors.Is(err, ErrInvalidCombinationSize) {
		t.Errorf("four types err = %v, want ErrInvalidCombinationSize", err)
	}
	if _, err := c.Combination("Fire", "Fairy"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("unknown name err = %v, want ErrInvalidType", err)
	}
}

func TestCombination_Compare(t *testing.T) {
	c := Gen1()
	mustCombo := func(names ...string) Combination {
		combo, err := c.Combination(names...)
		if err != nil {
			t.Fatalf("Combination(%v): %v", names, err)
		}
		return combo
	}

	normal := mustCombo("Normal")
	normalFire := mustCombo("Normal", "Fire")
	fire := mustCombo("Fire")

	if normal.Compare(normalFire) >= 0 {
		t.Error("Normal should sort before Normal/Fire")
	}
	if normalFire.Compare(fire) >= 0 {
		t.Error("Normal/Fire should sort before Fire")
	}
	if fire.Compare(mustCombo("fire")) != 0 {
		t.Error("equal combinations should compare 0")
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"Water": {"Fire": 2, "Water": 0.5},
		"Fire": {"Water": 0.5, "Grass": 2},
		"Grass": {"Water": 2, "Fire": 0.5, "Grass": 0.5}
	}`)

	c, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	types := c.Types()
	want := []string{"Water", "Fire", "Grass"}
	for i, name := range want {
		if types[i].Name != name || types[i].ID != i {
			t.Errorf("Types()[%d] = %+v, want %s/%d", i, types[i], name, i)
		}
	}

	fire, _ := c.TypeByName("Fire")
	water, _ := c.TypeByName("Water")
	if m, _ := c.Lookup(water, fire); m != SuperEffective {
		t.Errorf("Lookup(Water, Fire) = %v, want x2", m)
	}
	if m, _ := c.Lookup(fire, fire); m != Neutral {
		t.Errorf("Lookup(Fire, Fire) = %v, want x1", m)
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	inputs := map[string]string{
		"not json":   `{"Fire": `,
		"array":      `["Fire"]`,
		"row scalar": `{"Fire": 2}`,
		"string val": `{"Fire": {"Fire": "half"}}`,
	}
	for name, input := range inputs {
		if _, err := ParseJSON([]byte(input)); !errors.Is(err, ErrMalformedChartData) {
			t.Errorf("%s: err = %v, want ErrMalformedChartData", name, err)
		}
	}

	if _, err := ParseJSON([]byte(`{"Fire": {"Water": 2}}`)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown defender err = %v, want ErrUnknownType", err)
	}
}
