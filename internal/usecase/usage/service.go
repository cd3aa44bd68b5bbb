package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/navegador/internal/domain"
	domusage "github.com/kailas-cloud/navegador/internal/domain/usage"
	"github.com/kailas-cloud/navegador/internal/domain/usage/budget"
	"github.com/kailas-cloud/navegador/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	br                   BudgetReader
	provider             string
	costPerMillionTokens float64 // USD
	now                  func() time.Time
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader, provider string, costPerMillionTokens float64) *Service {
	return &Service{
		br:                   br,
		provider:             provider,
		costPerMillionTokens: costPerMillionTokens,
		now:                  time.Now,
	}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) (domusage.Report, error) {
	if !period.IsValid() {
		return domusage.Report{}, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, period)
	}

	now := s.now().UTC()
	var startT, endT time.Time
	var limit, used, remaining int64 = 0, 0, -1

	switch period {
	case domusage.PeriodDay:
		startT = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		endT = startT.AddDate(0, 0, 1)
		if s.br != nil {
			limit = s.br.DailyLimit()
			used = s.br.DailyUsed()
			remaining = s.br.RemainingDaily()
		}
	case domusage.PeriodMonth:
		startT = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		endT = startT.AddDate(0, 1, 0)
		if s.br != nil {
			limit = s.br.MonthlyLimit()
			used = s.br.MonthlyUsed()
			remaining = s.br.RemainingMonthly()
		}
	}

	exhausted := limit > 0 && remaining == 0

	b := budget.New(limit, remaining, exhausted, endT.UnixMilli())
	m := metrics.New(used, s.costMillidollars(used))

	return domusage.NewReport(period, startT.UnixMilli(), endT.UnixMilli(), s.provider, m, b), nil
}

// costMillidollars converts tokens to thousandths of a dollar, rounded down.
func (s *Service) costMillidollars(tokens int64) int64 {
	if s.costPerMillionTokens <= 0 || tokens <= 0 {
		return 0
	}
	return int64(float64(tokens) * s.costPerMillionTokens / 1000)
}
