package player

// catalogEntry is one built-in player definition.
type catalogEntry struct {
	name  string
	attrs Attributes
}

// catalog is the built-in stock player list, keyed by display name.
// Attribute scores are design constants; they never change at runtime.
var catalog = map[string]catalogEntry{}

// stockList enumerates the catalog in a stable, hand-curated order.
var stockList = []catalogEntry{
	{"Alisson Becker", Attributes{Pace: 55, Passing: 74, Stamina: 60, Awareness: 90, Tackling: 30}},
	{"Ederson Moraes", Attributes{Pace: 58, Passing: 84, Stamina: 60, Awareness: 87, Tackling: 32}},
	{"Virgil van Dijk", Attributes{Pace: 75, Passing: 80, Stamina: 82, Awareness: 92, Tackling: 93}},
	{"Ruben Dias", Attributes{Pace: 70, Passing: 76, Stamina: 84, Awareness: 90, Tackling: 91}},
	{"Achraf Hakimi", Attributes{Pace: 94, Passing: 79, Stamina: 88, Awareness: 78, Tackling: 76}},
	{"Trent Alexander-Arnold", Attributes{Pace: 78, Passing: 92, Stamina: 84, Awareness: 80, Tackling: 72}},
	{"Andrew Robertson", Attributes{Pace: 82, Passing: 83, Stamina: 90, Awareness: 81, Tackling: 80}},
	{"Theo Hernandez", Attributes{Pace: 93, Passing: 78, Stamina: 89, Awareness: 75, Tackling: 78}},
	{"Rodri", Attributes{Pace: 62, Passing: 90, Stamina: 88, Awareness: 93, Tackling: 85}},
	{"Declan Rice", Attributes{Pace: 70, Passing: 82, Stamina: 92, Awareness: 87, Tackling: 86}},
	{"Kevin De Bruyne", Attributes{Pace: 72, Passing: 96, Stamina: 83, Awareness: 94, Tackling: 58}},
	{"Jude Bellingham", Attributes{Pace: 80, Passing: 86, Stamina: 91, Awareness: 89, Tackling: 74}},
	{"Luka Modric", Attributes{Pace: 68, Passing: 93, Stamina: 80, Awareness: 94, Tackling: 62}},
	{"Pedri", Attributes{Pace: 74, Passing: 89, Stamina: 85, Awareness: 88, Tackling: 60}},
	{"Bruno Fernandes", Attributes{Pace: 70, Passing: 90, Stamina: 88, Awareness: 86, Tackling: 56}},
	{"Lionel Messi", Attributes{Pace: 80, Passing: 95, Stamina: 70, Awareness: 96, Tackling: 34}},
	{"Kylian Mbappe", Attributes{Pace: 97, Passing: 82, Stamina: 86, Awareness: 85, Tackling: 36}},
	{"Erling Haaland", Attributes{Pace: 91, Passing: 70, Stamina: 84, Awareness: 88, Tackling: 42}},
	{"Mohamed Salah", Attributes{Pace: 90, Passing: 83, Stamina: 87, Awareness: 86, Tackling: 45}},
	{"Vinicius Junior", Attributes{Pace: 95, Passing: 80, Stamina: 85, Awareness: 82, Tackling: 30}},
	{"Harry Kane", Attributes{Pace: 70, Passing: 86, Stamina: 82, Awareness: 92, Tackling: 48}},
	{"Son Heung-min", Attributes{Pace: 88, Passing: 82, Stamina: 86, Awareness: 85, Tackling: 40}},
}

func init() {
	for _, e := range stockList {
		catalog[e.name] = e
	}
}

// StockNames returns the catalog names in their curated order.
func StockNames() []string {
	names := make([]string, len(stockList))
	for i, e := range stockList {
		names[i] = e.name
	}
	return names
}

// IsStock reports whether name is in the built-in catalog.
func IsStock(name string) bool {
	_, ok := catalog[name]
	return ok
}
