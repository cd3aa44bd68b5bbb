package match

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/navegador/internal/domain"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
)

// DefaultTopK is the number of candidates returned when the caller does not ask for more.
const DefaultTopK = 3

// Rank scores every location against attrs and returns the topK best, highest first.
// Ties keep catalog order. topK <= 0 means DefaultTopK; topK larger than the catalog
// returns the whole catalog. Entries are returned even when every score is zero.
func Rank(attrs query.Attributes, catalog []location.ServiceLocation, topK int, rules []Rule) ([]location.Scored, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > len(catalog) {
		topK = len(catalog)
	}

	in := Input{Attrs: attrs, Search: attrs.SearchString()}
	scored := make([]location.Scored, len(catalog))
	for i, loc := range catalog {
		in.Location = loc
		score := 0
		for j := range rules {
			if rules[j].Holds(&in) {
				score += rules[j].Weight
			}
		}
		scored[i] = location.NewScored(loc, score)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score() > scored[j].Score()
	})

	return scored[:topK], nil
}

// Service ranks an injected catalog.
type Service struct {
	catalog location.Catalog
	rules   []Rule
	topK    int
}

// New creates a matcher over catalog using DefaultRules.
func New(catalog location.Catalog) *Service {
	return &Service{catalog: catalog, rules: DefaultRules, topK: DefaultTopK}
}

// WithTopK sets the default number of candidates.
func (s *Service) WithTopK(topK int) *Service {
	if topK > 0 {
		s.topK = topK
	}
	return s
}

// WithRules replaces the rule table.
func (s *Service) WithRules(rules []Rule) *Service {
	s.rules = rules
	return s
}

// Match ranks the catalog for attrs. topK <= 0 uses the service default.
func (s *Service) Match(attrs query.Attributes, topK int) ([]location.Scored, error) {
	if topK <= 0 {
		topK = s.topK
	}
	return Rank(attrs, s.catalog.Locations(), topK, s.rules)
}

// Catalog returns the catalog the service ranks.
func (s *Service) Catalog() location.Catalog { return s.catalog }

// Location looks up a catalog entry by its exact name.
func (s *Service) Location(name string) (location.ServiceLocation, error) {
	l, ok := s.catalog.ByName(name)
	if !ok {
		return location.ServiceLocation{}, fmt.Errorf("%w: location %q", domain.ErrNotFound, name)
	}
	return l, nil
}
