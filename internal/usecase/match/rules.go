package match

import (
	"strings"

	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
)

// Input is the per-entry view a rule is evaluated against.
type Input struct {
	Attrs    query.Attributes
	Search   string // lowercased demanda + perfil + gravidade
	Location location.ServiceLocation
}

// Rule is one additive scoring predicate. Rules are independent: every rule is
// evaluated for every entry and the weights of those that hold are summed.
type Rule struct {
	Name   string
	Weight int
	Holds  func(in *Input) bool
}

// DefaultRules is the rule table used by the matcher.
var DefaultRules = []Rule{
	{Name: "gravidade_grave", Weight: 10, Holds: gravidadeIs(query.Grave, "grave")},
	{Name: "gravidade_leve", Weight: 10, Holds: gravidadeIs(query.Leve, "leve")},
	{Name: "animais", Weight: 20, Holds: mentions("animais", "animal", "pet")},
	{Name: "documentos", Weight: 10, Holds: mentions("documentos", "document")},
	{Name: "pernoite", Weight: 5, Holds: mentions("pernoite", "dormir", "pernoite")},
	{Name: "feminino", Weight: 5, Holds: mentions("feminino", "mulher", "feminina")},
	{Name: "demanda_keyword", Weight: 2, Holds: demandaInLocation},
}

// gravidadeIs holds when the query severity equals g and the entry carries tag.
func gravidadeIs(g query.Gravidade, tag string) func(in *Input) bool {
	return func(in *Input) bool {
		return in.Attrs.Gravidade == g && in.Location.HasTag(tag)
	}
}

// mentions holds when the search string contains any of words and the entry carries tag.
func mentions(tag string, words ...string) func(in *Input) bool {
	return func(in *Input) bool {
		if !in.Location.HasTag(tag) {
			return false
		}
		for _, w := range words {
			if strings.Contains(in.Search, w) {
				return true
			}
		}
		return false
	}
}

// demandaInLocation holds when the entry's name+tags text contains the raw demanda.
// An empty demanda never matches.
func demandaInLocation(in *Input) bool {
	if in.Attrs.Demanda == "" {
		return false
	}
	return strings.Contains(in.Location.SearchText(), strings.ToLower(in.Attrs.Demanda))
}
