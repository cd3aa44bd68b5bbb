package navegador

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
)

// Match ranks the catalog against q, highest score first.
// Ties keep catalog order; zero-score locations are still returned.
func (c *Client) Match(_ context.Context, q MatchQuery) (_ []ScoredLocation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match", start, err) }()

	if q.Gravidade != "" && !query.Gravidade(q.Gravidade).IsValid() {
		return nil, fmt.Errorf("%w: gravidade must be leve, moderada or grave", ErrInvalidInput)
	}
	if q.TopK < 0 {
		return nil, fmt.Errorf("%w: top_k must not be negative", ErrInvalidInput)
	}

	scored, err := c.matchSvc.Match(query.Attributes{
		Demanda:       q.Demanda,
		PerfilUsuario: q.PerfilUsuario,
		HorarioAtual:  q.HorarioAtual,
		Gravidade:     query.Gravidade(q.Gravidade),
	}, q.TopK)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	out := make([]ScoredLocation, len(scored))
	for i, s := range scored {
		out[i] = ScoredLocation{Location: locationFromDomain(s.Location()), Score: s.Score()}
	}
	return out, nil
}

// Locations returns the catalog in catalog order.
func (c *Client) Locations() []Location {
	all := c.matchSvc.Catalog().Locations()
	out := make([]Location, len(all))
	for i, l := range all {
		out[i] = locationFromDomain(l)
	}
	return out
}

// Location returns the catalog entry with the exact given name, or ErrNotFound.
func (c *Client) Location(name string) (Location, error) {
	l, err := c.matchSvc.Location(name)
	if err != nil {
		return Location{}, fmt.Errorf("location: %w", err)
	}
	return locationFromDomain(l), nil
}

func locationFromDomain(l location.ServiceLocation) Location {
	return Location{
		Name:    l.Name(),
		Address: l.Address(),
		Contact: l.Contact(),
		Tags:    l.Tags(),
	}
}
