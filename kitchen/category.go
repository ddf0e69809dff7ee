package kitchen

import (
	"strings"
	"unicode"
)

// ThermalClass groups ticket lines for display colouring only.
type ThermalClass string

const (
	ThermalCold    ThermalClass = "cold"
	ThermalHot     ThermalClass = "hot"
	ThermalDrink   ThermalClass = "drink"
	ThermalDessert ThermalClass = "dessert"
)

// DefaultPriorityRank dipakai untuk kategori kosong atau yang tidak dikenal.
const DefaultPriorityRank = 5

// Classification is the kitchen sequencing info derived from a menu category.
type Classification struct {
	PriorityRank int          `json:"priority_rank"`
	ThermalClass ThermalClass `json:"thermal_class"`
}

type rankRule struct {
	keyword string
	rank    int
}

// Urutan penting: first match wins, jadi keyword yang lebih spesifik ditaruh duluan
// ("soğuk içecek" sebelum "içecek", "ara sıcak" sebelum "sıcak").
var rankTable = []rankRule{
	{"soğuk içecek", 1},
	{"sıcak içecek", 2},
	{"soğuk", 1},
	{"bira", 1},
	{"şarap", 1},
	{"rakı", 1},
	{"içecek", 1},
	{"meşrubat", 1},
	{"çay", 2},
	{"kahve", 2},
	{"salata", 2},
	{"çorba", 3},
	{"ara sıcak", 5},
	{"sıcak", 4},
	{"makarna", 6},
	{"pizza", 6},
	{"pide", 6},
	{"tatlı", 8},
	{"dondurma", 8},
	{"et yemek", 7},
	{"kebap", 7},
	{"deniz", 7},
	{"balık", 7},
	{"tavuk", 7},
	{"ızgara", 7},
	{"köfte", 7},
	{"ana yemek", 7},
}

var (
	drinkKeywords   = []string{"içecek", "bira", "şarap", "rakı", "votka", "viski"}
	coldKeywords    = []string{"soğuk", "salata"}
	dessertKeywords = []string{"tatlı", "dondurma"}
)

// Classify maps a free-text menu category to its priority rank and thermal class.
// A nil or blank category falls into the mid-priority hot bucket.
func Classify(category *string) Classification {
	if category == nil {
		return Classification{PriorityRank: DefaultPriorityRank, ThermalClass: ThermalHot}
	}
	return ClassifyName(*category)
}

// ClassifyName is Classify for a plain string.
func ClassifyName(category string) Classification {
	name := normalizeCategory(category)
	return Classification{
		PriorityRank: priorityRank(name),
		ThermalClass: thermalClass(name),
	}
}

func normalizeCategory(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(s))
}

func priorityRank(name string) int {
	if name == "" {
		return DefaultPriorityRank
	}
	for _, r := range rankTable {
		if strings.Contains(name, r.keyword) {
			return r.rank
		}
	}
	return DefaultPriorityRank
}

func thermalClass(name string) ThermalClass {
	switch {
	case containsAny(name, drinkKeywords):
		return ThermalDrink
	case containsAny(name, coldKeywords):
		return ThermalCold
	case containsAny(name, dessertKeywords):
		return ThermalDessert
	default:
		return ThermalHot
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
