package chart

// Gen1Types lists the first-generation types in id order.
var Gen1Types = []string{
	"Normal", "Fire", "Water", "Electric", "Grass",
	"Ice", "Fighting", "Poison", "Ground", "Flying",
	"Psychic", "Bug", "Rock", "Ghost", "Dragon",
}

var gen1Entries = []Entry{
	{"Normal", "Rock", NotVeryEffective},
	{"Normal", "Ghost", Immune},

	{"Fire", "Fire", NotVeryEffective},
	{"Fire", "Water", NotVeryEffective},
	{"Fire", "Grass", SuperEffective},
	{"Fire", "Ice", SuperEffective},
	{"Fire", "Bug", SuperEffective},
	{"Fire", "Rock", NotVeryEffective},
	{"Fire", "Dragon", NotVeryEffective},

	{"Water", "Fire", SuperEffective},
	{"Water", "Water", NotVeryEffective},
	{"Water", "Grass", NotVeryEffective},
	{"Water", "Ground", SuperEffective},
	{"Water", "Rock", SuperEffective},
	{"Water", "Dragon", NotVeryEffective},

	{"Electric", "Water", SuperEffective},
	{"Electric", "Electric", NotVeryEffective},
	{"Electric", "Grass", NotVeryEffective},
	{"Electric", "Ground", Immune},
	{"Electric", "Flying", SuperEffective},
	{"Electric", "Dragon", NotVeryEffective},

	{"Grass", "Fire", NotVeryEffective},
	{"Grass", "Water", SuperEffective},
	{"Grass", "Grass", NotVeryEffective},
	{"Grass", "Poison", NotVeryEffective},
	{"Grass", "Ground", SuperEffective},
	{"Grass", "Flying", NotVeryEffective},
	{"Grass", "Bug", NotVeryEffective},
	{"Grass", "Rock", SuperEffective},
	{"Grass", "Dragon", NotVeryEffective},

	{"Ice", "Water", NotVeryEffective},
	{"Ice", "Grass", SuperEffective},
	{"Ice", "Ice", NotVeryEffective},
	{"Ice", "Ground", SuperEffective},
	{"Ice", "Flying", SuperEffective},
	{"Ice", "Dragon", SuperEffective},

	{"Fighting", "Normal", SuperEffective},
	{"Fighting", "Ice", SuperEffective},
	{"Fighting", "Poison", NotVeryEffective},
	{"Fighting", "Flying", NotVeryEffective},
	{"Fighting", "Psychic", NotVeryEffective},
	{"Fighting", "Bug", NotVeryEffective},
	{"Fighting", "Rock", SuperEffective},
	{"Fighting", "Ghost", Immune},

	{"Poison", "Grass", SuperEffective},
	{"Poison", "Poison", NotVeryEffective},
	{"Poison", "Ground", NotVeryEffective},
	{"Poison", "Rock", NotVeryEffective},
	{"Poison", "Ghost", NotVeryEffective},
	{"Poison", "Bug", SuperEffective},

	{"Ground", "Fire", SuperEffective},
	{"Ground", "Electric", SuperEffective},
	{"Ground", "Grass", NotVeryEffective},
	{"Ground", "Poison", SuperEffective},
	{"Ground", "Flying", Immune},
	{"Ground", "Bug", NotVeryEffective},
	{"Ground", "Rock", SuperEffective},

	{"Flying", "Electric", NotVeryEffective},
	{"Flying", "Grass", SuperEffective},
	{"Flying", "Fighting", SuperEffective},
	{"Flying", "Bug", SuperEffective},
	{"Flying", "Rock", NotVeryEffective},

	{"Psychic", "Fighting", SuperEffective},
	{"Psychic", "Poison", SuperEffective},
	{"Psychic", "Psychic", NotVeryEffective},

	{"Bug", "Fire", NotVeryEffective},
	{"Bug", "Grass", SuperEffective},
	{"Bug", "Fighting", NotVeryEffective},
	{"Bug", "Poison", SuperEffective},
	{"Bug", "Flying", NotVeryEffective},
	{"Bug", "Psychic", SuperEffective},
	{"Bug", "Ghost", NotVeryEffective},

	{"Rock", "Fire", SuperEffective},
	{"Rock", "Ice", SuperEffective},
	{"Rock", "Fighting", NotVeryEffective},
	{"Rock", "Ground", NotVeryEffective},
	{"Rock", "Flying", SuperEffective},
	{"Rock", "Bug", SuperEffective},

	{"Ghost", "Normal", Immune},
	{"Ghost", "Psychic", Immune},
	{"Ghost", "Ghost", SuperEffective},

	{"Dragon", "Dragon", SuperEffective},
}

// Gen1 returns the built-in first-generation chart.
func Gen1() *Chart {
	c, err := New(Gen1Types, gen1Entries)
	if err != nil {
		panic(err)
	}

	return c
}
