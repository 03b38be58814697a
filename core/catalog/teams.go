package catalog

// teamMapping folds the sponsor and era variants of each constructor onto
// one canonical name, following the lineage of the entry rather than the
// badge of the season.
var teamMapping = map[string]string{
	// Racing Bulls lineage (Toro Rosso, AlphaTauri, RB)
	"Toro Rosso":               "Racing Bulls",
	"Scuderia Toro Rosso":      "Racing Bulls",
	"AlphaTauri":               "Racing Bulls",
	"Scuderia AlphaTauri":      "Racing Bulls",
	"AlphaTauri Honda":         "Racing Bulls",
	"RB":                       "Racing Bulls",
	"RB F1 Team":               "Racing Bulls",
	"Visa Cash App RB":         "Racing Bulls",
	"Visa Cash App RB F1 Team": "Racing Bulls",
	"Racing Bulls":             "Racing Bulls",
	"Racing Bulls F1 Team":     "Racing Bulls",

	// Red Bull Racing, distinct from the sister entry above
	"Red Bull":                   "Red Bull Racing",
	"Red Bull Racing":            "Red Bull Racing",
	"Red Bull Racing Honda":      "Red Bull Racing",
	"Red Bull Racing Honda RBPT": "Red Bull Racing",
	"Oracle Red Bull Racing":     "Red Bull Racing",

	"Mercedes":                               "Mercedes",
	"Mercedes-AMG Petronas":                  "Mercedes",
	"Mercedes-AMG PETRONAS F1 Team":          "Mercedes",
	"Mercedes-AMG Petronas Formula One Team": "Mercedes",

	"Ferrari":                         "Ferrari",
	"Scuderia Ferrari":                "Ferrari",
	"Scuderia Ferrari Mission Winnow": "Ferrari",
	"Scuderia Ferrari HP":             "Ferrari",

	"McLaren":          "McLaren",
	"McLaren F1 Team":  "McLaren",
	"McLaren Renault":  "McLaren",
	"McLaren Mercedes": "McLaren",

	"Williams":          "Williams",
	"Williams Racing":   "Williams",
	"Williams Mercedes": "Williams",

	"Haas":                   "Haas",
	"Haas F1 Team":           "Haas",
	"Haas Ferrari":           "Haas",
	"MoneyGram Haas F1 Team": "Haas",

	// Aston Martin lineage, Racing Point era included
	"Racing Point":                                   "Aston Martin",
	"Racing Point BWT Mercedes":                      "Aston Martin",
	"Aston Martin":                                   "Aston Martin",
	"Aston Martin F1 Team":                           "Aston Martin",
	"Aston Martin Aramco Cognizant Formula One Team": "Aston Martin",
	"Aston Martin Aramco F1 Team":                    "Aston Martin",

	// Alpine lineage, Renault era included
	"Renault":            "Alpine",
	"Renault F1 Team":    "Alpine",
	"Alpine":             "Alpine",
	"Alpine F1 Team":     "Alpine",
	"BWT Alpine F1 Team": "Alpine",

	// Audi lineage (Sauber, Alfa Romeo)
	"Alfa Romeo":                "Audi",
	"Alfa Romeo Racing":         "Audi",
	"Alfa Romeo Racing Ferrari": "Audi",
	"Alfa Romeo F1 Team":        "Audi",
	"Sauber":                    "Audi",
	"Sauber F1 Team":            "Audi",
	"Kick Sauber":               "Audi",
	"Stake F1 Team Kick Sauber": "Audi",
	"Audi":                      "Audi",
	"Audi F1 Team":              "Audi",
	"Audi Revolut F1 Team":      "Audi",

	// Cadillac, new in 2026
	"Cadillac":         "Cadillac",
	"Cadillac Racing":  "Cadillac",
	"Cadillac F1 Team": "Cadillac",
}

// NormalizeTeam maps a raw constructor name to its canonical lineage name.
// Unknown names pass through unchanged.
func NormalizeTeam(name string) string {
	if canonical, ok := teamMapping[name]; ok {
		return canonical
	}
	return name
}
