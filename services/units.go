package services

// UnitOptions is the list of unit-of-measure options for materials.
// Articles and compositions carry free-form units since they mix material
// and labor measures.
var UnitOptions = []string{
	"m",
	"m2",
	"m3",
	"ml",
	"kg",
	"t",
	"l",
	"u",
	"sac",
	"rouleau",
	"plaque",
	"paquet",
}

// ServiceUnitOptions is the list of unit options for flat-rate services
// (forfait, day, hour, ensemble).
var ServiceUnitOptions = []string{
	"ft",
	"j",
	"h",
	"ens",
}
