package metrics

// Metrics holds language model consumption for a time period.
type Metrics struct {
	tokens           int64
	costMillidollars int64
}

// New creates a Metrics snapshot.
func New(tokens, costMillidollars int64) Metrics {
	return Metrics{tokens: tokens, costMillidollars: costMillidollars}
}

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int64 { return m.tokens }

// CostMillidollars returns the estimated cost (1 USD = 1000).
func (m Metrics) CostMillidollars() int64 { return m.costMillidollars }
