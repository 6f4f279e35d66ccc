package scoring

import (
	"fmt"
	"strings"
)

// Category is the applicant's reservation category.
type Category string

const (
	CategoryGeneral Category = "General"
	CategoryOBC     Category = "OBC"
	CategorySC      Category = "SC"
	CategoryST      Category = "ST"
)

// Categories lists the categories in form order.
var Categories = []Category{CategoryGeneral, CategoryOBC, CategorySC, CategoryST}

// ParseCategory accepts a category name in any case.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(strings.TrimSpace(raw), string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Scheme is the scholarship scheme applied for.
type Scheme string

const (
	SchemeMeritBased    Scheme = "MeritBased"
	SchemeMeritAndMeans Scheme = "MeritAndMeans"
	SchemeNeedBased     Scheme = "NeedBased"
)

// Schemes lists the schemes in form order.
var Schemes = []Scheme{SchemeMeritBased, SchemeMeritAndMeans, SchemeNeedBased}

var schemeLabels = map[Scheme]string{
	SchemeMeritBased:    "Merit Based",
	SchemeMeritAndMeans: "Merit + Means",
	SchemeNeedBased:     "Need Based",
}

// Label returns the display string used on the form and in the record store.
func (s Scheme) Label() string {
	if label, ok := schemeLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseScheme accepts the enum name ("MeritBased"), the display label
// ("Merit + Means") or a snake/kebab variant ("need_based").
func ParseScheme(raw string) (Scheme, error) {
	key := schemeKey(raw)
	for _, s := range Schemes {
		if key == schemeKey(string(s)) || key == schemeKey(s.Label()) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown scheme %q", raw)
}

func schemeKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == '+' || r == '&':
			b.WriteString("and")
		}
	}
	return b.String()
}

// Status is the final scholarship decision.
type Status string

const (
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)
