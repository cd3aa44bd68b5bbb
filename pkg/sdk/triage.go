package navegador

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/navegador/internal/domain"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
)

// Triage turns a free-text case report into a recommendation.
// With a database configured the result is also appended to the history;
// a failing history write does not fail the triage.
func (c *Client) Triage(ctx context.Context, report string) (_ TriageResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("triage", start, err) }()

	if c.triageSvc == nil {
		return TriageResult{}, ErrLLMNotConfigured
	}

	ctx, usage := domain.NewContextWithUsage(ctx)
	res, err := c.triageSvc.Analyze(ctx, report)
	c.obs.observeTokens("triage", usage.TotalTokens)
	if err != nil {
		return TriageResult{}, fmt.Errorf("triage: %w", err)
	}

	if c.historySvc != nil {
		if _, herr := c.historySvc.Record(ctx, report, res); herr != nil {
			c.obs.warn("history record failed", "error", herr)
		}
	}
	return triageFromDomain(res), nil
}

func triageFromDomain(r domtriage.Result) TriageResult {
	return TriageResult{
		Destination:    r.Destination(),
		Justification:  r.Justification(),
		AddressContact: r.AddressContact(),
		Procedures:     r.Procedures(),
		Severity:       Severity(r.Severity()),
	}
}
