package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/navegador/internal/domain"
	domusage "github.com/kailas-cloud/navegador/internal/domain/usage"
)

// --- Mock ---

type mockBudgetReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	dailyUsed        int64
	monthlyUsed      int64
	remainingDaily   int64
	remainingMonthly int64
}

func (m *mockBudgetReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockBudgetReader) DailyUsed() int64        { return m.dailyUsed }
func (m *mockBudgetReader) MonthlyUsed() int64      { return m.monthlyUsed }
func (m *mockBudgetReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockBudgetReader) RemainingMonthly() int64 { return m.remainingMonthly }

var fixedNow = time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)

func newTestService(br BudgetReader, cost float64) *Service {
	svc := New(br, "gemini", cost)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// --- Tests ---

func TestGetReport_DailyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       10000,
		dailyUsed:        3000,
		remainingDaily:   7000,
		monthlyLimit:     100000,
		monthlyUsed:      50000,
		remainingMonthly: 50000,
	}
	r, err := newTestService(br, 0).GetReport(context.Background(), domusage.PeriodDay)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}

	if r.Period() != domusage.PeriodDay {
		t.Errorf("expected period %q, got %q", domusage.PeriodDay, r.Period())
	}
	dayStart := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != dayStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", dayStart.UnixMilli(), r.PeriodStart())
	}
	if r.PeriodEnd() != dayStart.Add(24*time.Hour).UnixMilli() {
		t.Errorf("unexpected period end %d", r.PeriodEnd())
	}
	if r.Provider() != "gemini" {
		t.Errorf("provider = %q", r.Provider())
	}
	if r.Budget().TokensLimit() != 10000 {
		t.Errorf("expected limit 10000, got %d", r.Budget().TokensLimit())
	}
	if r.Budget().TokensRemaining() != 7000 {
		t.Errorf("expected remaining 7000, got %d", r.Budget().TokensRemaining())
	}
	if r.Budget().ResetsAt() != r.PeriodEnd() {
		t.Errorf("budget must reset at period end")
	}
	if r.Budget().IsExhausted() {
		t.Error("budget should not be exhausted")
	}
	if r.Metrics().Tokens() != 3000 {
		t.Errorf("expected tokens 3000, got %d", r.Metrics().Tokens())
	}
}

func TestGetReport_MonthlyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		monthlyUsed:      80000,
		remainingMonthly: 20000,
	}
	r, err := newTestService(br, 0).GetReport(context.Background(), domusage.PeriodMonth)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}

	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != monthStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", monthStart.UnixMilli(), r.PeriodStart())
	}
	if r.PeriodEnd() != time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli() {
		t.Errorf("unexpected period end %d", r.PeriodEnd())
	}
	if r.Budget().TokensLimit() != 100000 || r.Metrics().Tokens() != 80000 {
		t.Errorf("unexpected budget/metrics: %d/%d", r.Budget().TokensLimit(), r.Metrics().Tokens())
	}
}

func TestGetReport_InvalidPeriod(t *testing.T) {
	_, err := newTestService(nil, 0).GetReport(context.Background(), domusage.Period("year"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetReport_NilBudgetReader(t *testing.T) {
	r, err := newTestService(nil, 0).GetReport(context.Background(), domusage.PeriodDay)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}

	if r.Budget().TokensLimit() != 0 {
		t.Errorf("expected limit 0, got %d", r.Budget().TokensLimit())
	}
	if r.Budget().TokensRemaining() != -1 {
		t.Errorf("expected remaining -1 (unlimited), got %d", r.Budget().TokensRemaining())
	}
	if r.Budget().IsExhausted() {
		t.Error("nil budget reader should not be exhausted")
	}
}

func TestGetReport_Exhausted(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:     5000,
		dailyUsed:      5000,
		remainingDaily: 0,
	}
	r, _ := newTestService(br, 0).GetReport(context.Background(), domusage.PeriodDay)

	if !r.Budget().IsExhausted() {
		t.Error("budget should be exhausted when remaining is 0")
	}
}

func TestGetReport_Cost(t *testing.T) {
	br := &mockBudgetReader{monthlyUsed: 2_000_000, remainingMonthly: -1}

	r, _ := newTestService(br, 0.30).GetReport(context.Background(), domusage.PeriodMonth)

	// 2M tokens at $0.30 per million = $0.60
	if got := r.Metrics().CostMillidollars(); got != 600 {
		t.Errorf("expected 600 millidollars, got %d", got)
	}
	if r.Budget().IsExhausted() {
		t.Error("unlimited budget must not be exhausted")
	}
}
