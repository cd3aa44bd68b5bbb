package location

// Scored pairs a location with the score it earned for one query.
type Scored struct {
	location ServiceLocation
	score    int
}

// NewScored creates a scored location.
func NewScored(l ServiceLocation, score int) Scored {
	return Scored{location: l, score: score}
}

// Location returns the scored location.
func (s Scored) Location() ServiceLocation { return s.location }

// Score returns the additive match score.
func (s Scored) Score() int { return s.score }
