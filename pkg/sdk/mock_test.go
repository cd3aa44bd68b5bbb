package navegador

import (
	"context"

	"github.com/kailas-cloud/navegador/internal/domain"
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
	domusage "github.com/kailas-cloud/navegador/internal/domain/usage"
	healthuc "github.com/kailas-cloud/navegador/internal/usecase/health"
)

// --- matchUseCase mock ---

type mockMatchUC struct {
	matchFn func(attrs query.Attributes, topK int) ([]location.Scored, error)
	catalog location.Catalog
}

func (m *mockMatchUC) Match(attrs query.Attributes, topK int) ([]location.Scored, error) {
	return m.matchFn(attrs, topK)
}

func (m *mockMatchUC) Catalog() location.Catalog { return m.catalog }

func (m *mockMatchUC) Location(name string) (location.ServiceLocation, error) {
	l, ok := m.catalog.ByName(name)
	if !ok {
		return location.ServiceLocation{}, domain.ErrNotFound
	}
	return l, nil
}

// --- triageUseCase mock ---

type mockTriageUC struct {
	analyzeFn func(ctx context.Context, report string) (domtriage.Result, error)
}

func (m *mockTriageUC) Analyze(ctx context.Context, report string) (domtriage.Result, error) {
	return m.analyzeFn(ctx, report)
}

// --- historyUseCase mock ---

type mockHistoryUC struct {
	recordFn func(ctx context.Context, report string, result domtriage.Result) (domhistory.Item, error)
	listFn   func(ctx context.Context, limit int) ([]domhistory.Item, error)
	clearFn  func(ctx context.Context) error
}

func (m *mockHistoryUC) Record(
	ctx context.Context, report string, result domtriage.Result,
) (domhistory.Item, error) {
	return m.recordFn(ctx, report, result)
}

func (m *mockHistoryUC) List(ctx context.Context, limit int) ([]domhistory.Item, error) {
	return m.listFn(ctx, limit)
}

func (m *mockHistoryUC) Clear(ctx context.Context) error {
	return m.clearFn(ctx)
}

// --- usageUseCase mock ---

type mockUsageUC struct {
	getReportFn func(ctx context.Context, period domusage.Period) (domusage.Report, error)
}

func (m *mockUsageUC) GetReport(ctx context.Context, period domusage.Period) (domusage.Report, error) {
	return m.getReportFn(ctx, period)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
