package importer

import (
	"strings"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/money"
)

// Profile describes the header layout and value formats of one export flavour.
type Profile struct {
	Name        string
	DateCol     string
	TypeCol     string // Optional column
	CategoryCol string
	DescCol     string
	AmountCol   string

	DateLayouts []string
	ParseAmount func(string) (int64, error)

	// Types maps lower-case labels of the type column to a category type.
	Types map[string]category.Type
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.CategoryCol, p.DescCol, p.AmountCol}
}

// parseType resolves a type cell. Blank cells yield an empty type.
func (p Profile) parseType(s string) (category.Type, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}

	if t, ok := p.Types[strings.ToLower(s)]; ok {
		return t, true
	}

	return category.ParseType(s)
}

// profiles is tried in order against each row until one matches as a header.
var profiles = []Profile{
	{
		Name:        "english",
		DateCol:     "date",
		TypeCol:     "type",
		CategoryCol: "category",
		DescCol:     "description",
		AmountCol:   "amount",
		DateLayouts: []string{"2006-01-02", "01/02/2006", "2006/01/02"},
		ParseAmount: money.Parse,
		Types: map[string]category.Type{
			"income":  category.TypeIncome,
			"expense": category.TypeExpense,
		},
	},
	{
		Name:        "german",
		DateCol:     "datum",
		TypeCol:     "typ",
		CategoryCol: "kategorie",
		DescCol:     "beschreibung",
		AmountCol:   "betrag",
		DateLayouts: []string{"02.01.2006", "2.1.2006", "2006-01-02"},
		ParseAmount: money.ParseEuropean,
		Types: map[string]category.Type{
			"einnahme":  category.TypeIncome,
			"einnahmen": category.TypeIncome,
			"ausgabe":   category.TypeExpense,
			"ausgaben":  category.TypeExpense,
		},
	},
}
