package navegador

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/navegador/internal/domain"
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
	domusage "github.com/kailas-cloud/navegador/internal/domain/usage"
	"github.com/kailas-cloud/navegador/internal/domain/usage/budget"
	"github.com/kailas-cloud/navegador/internal/domain/usage/metrics"
	healthuc "github.com/kailas-cloud/navegador/internal/usecase/health"
)

func sampleResult(t *testing.T) domtriage.Result {
	t.Helper()
	r, err := domtriage.New("Associação São Pio", "aceita animais", "Rua Y, 50",
		[]string{"levar o animal na guia"}, domtriage.SeverityMedium)
	if err != nil {
		t.Fatalf("triage.New: %v", err)
	}
	return r
}

func TestMatch_PassesAttributes(t *testing.T) {
	saoPio := location.New("Associação São Pio", "Rua Y, 50", "(16) 1111-1111", []string{"animais"})
	var gotAttrs query.Attributes
	var gotTopK int
	c := &Client{matchSvc: &mockMatchUC{
		matchFn: func(attrs query.Attributes, topK int) ([]location.Scored, error) {
			gotAttrs, gotTopK = attrs, topK
			return []location.Scored{location.NewScored(saoPio, 27)}, nil
		},
	}}

	res, err := c.Match(context.Background(), MatchQuery{
		Demanda:       "pet",
		PerfilUsuario: "mulher com animal",
		HorarioAtual:  "22:00",
		Gravidade:     GravidadeModerada,
		TopK:          1,
	})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if gotAttrs.Demanda != "pet" || gotAttrs.PerfilUsuario != "mulher com animal" ||
		gotAttrs.HorarioAtual != "22:00" || gotAttrs.Gravidade != query.Moderada || gotTopK != 1 {
		t.Errorf("attrs = %+v topK = %d", gotAttrs, gotTopK)
	}
	if len(res) != 1 || res[0].Score != 27 || res[0].Name != "Associação São Pio" {
		t.Errorf("res = %+v", res)
	}
	if res[0].Tags[0] != "animais" {
		t.Errorf("tags = %v", res[0].Tags)
	}
}

func TestMatch_Validation(t *testing.T) {
	c := &Client{matchSvc: &mockMatchUC{
		matchFn: func(query.Attributes, int) ([]location.Scored, error) {
			t.Error("matcher must not be called for invalid input")
			return nil, nil
		},
	}}

	tests := []MatchQuery{
		{Gravidade: "GRAVE"},
		{Gravidade: "urgente"},
		{TopK: -1},
	}
	for _, q := range tests {
		if _, err := c.Match(context.Background(), q); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Match(%+v) err = %v, want ErrInvalidInput", q, err)
		}
	}
}

func TestMatch_Error(t *testing.T) {
	c := &Client{matchSvc: &mockMatchUC{
		matchFn: func(query.Attributes, int) ([]location.Scored, error) {
			return nil, domain.ErrInvalidInput
		},
	}}
	if _, err := c.Match(context.Background(), MatchQuery{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLocations(t *testing.T) {
	cat, err := location.NewCatalog([]location.ServiceLocation{
		location.New("A", "addr a", "1", []string{"x"}),
		location.New("B", "addr b", "2", nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	c := &Client{matchSvc: &mockMatchUC{catalog: cat}}

	got := c.Locations()
	if len(got) != 2 || got[0].Name != "A" || got[1].Address != "addr b" {
		t.Errorf("locations = %+v", got)
	}

	one, err := c.Location("A")
	if err != nil || one.Tags[0] != "x" {
		t.Errorf("Location(A) = %+v, %v", one, err)
	}
	if _, err := c.Location("C"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTriage_RecordsHistory(t *testing.T) {
	want := sampleResult(t)
	var recorded string
	c := &Client{
		triageSvc: &mockTriageUC{analyzeFn: func(ctx context.Context, report string) (domtriage.Result, error) {
			domain.UsageFromContext(ctx).AddTokens(250)
			return want, nil
		}},
		historySvc: &mockHistoryUC{recordFn: func(_ context.Context, report string, _ domtriage.Result) (domhistory.Item, error) {
			recorded = report
			return domhistory.Item{}, nil
		}},
	}

	res, err := c.Triage(context.Background(), "mulher com cachorro")
	if err != nil {
		t.Fatalf("Triage: %v", err)
	}
	if recorded != "mulher com cachorro" {
		t.Errorf("recorded = %q", recorded)
	}
	if res.Destination != "Associação São Pio" || res.Severity != SeverityMedium {
		t.Errorf("res = %+v", res)
	}
	if len(res.Procedures) != 1 || res.AddressContact != "Rua Y, 50" {
		t.Errorf("res = %+v", res)
	}
}

func TestTriage_HistoryFailureIsNotFatal(t *testing.T) {
	var buf strings.Builder
	obs, err := newObserver(slog.New(slog.NewTextHandler(&buf, nil)), nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &Client{
		triageSvc: &mockTriageUC{analyzeFn: func(context.Context, string) (domtriage.Result, error) {
			return sampleResult(t), nil
		}},
		historySvc: &mockHistoryUC{recordFn: func(context.Context, string, domtriage.Result) (domhistory.Item, error) {
			return domhistory.Item{}, errors.New("store down")
		}},
		obs: obs,
	}

	if _, err := c.Triage(context.Background(), "relato"); err != nil {
		t.Fatalf("Triage: %v", err)
	}
	if !strings.Contains(buf.String(), "history record failed") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestTriage_ErrorWrapped(t *testing.T) {
	for _, sentinel := range []error{ErrQuotaExceeded, ErrMalformedResponse, ErrRateLimited, ErrLLMProviderError} {
		c := &Client{triageSvc: &mockTriageUC{analyzeFn: func(context.Context, string) (domtriage.Result, error) {
			return domtriage.Result{}, sentinel
		}}}
		_, err := c.Triage(context.Background(), "relato")
		if !errors.Is(err, sentinel) {
			t.Errorf("err = %v, want %v", err, sentinel)
		}
	}
}

func TestHistory_List(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []domhistory.Item{domhistory.New("id-1", ts.UnixMilli(), "relato", sampleResult(t))}
	var gotLimit int
	c := &Client{historySvc: &mockHistoryUC{listFn: func(_ context.Context, limit int) ([]domhistory.Item, error) {
		gotLimit = limit
		return items, nil
	}}}

	got, err := c.History(context.Background(), 5)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if gotLimit != 5 {
		t.Errorf("limit = %d", gotLimit)
	}
	if len(got) != 1 || got[0].ID != "id-1" || !got[0].Timestamp.Equal(ts) || got[0].OriginalQuery != "relato" {
		t.Errorf("got = %+v", got)
	}
	if got[0].Result.Destination != "Associação São Pio" {
		t.Errorf("result = %+v", got[0].Result)
	}
}

func TestHistory_Errors(t *testing.T) {
	c := &Client{historySvc: &mockHistoryUC{
		listFn:  func(context.Context, int) ([]domhistory.Item, error) { return nil, errors.New("boom") },
		clearFn: func(context.Context) error { return errors.New("boom") },
	}}
	if _, err := c.History(context.Background(), 0); err == nil {
		t.Error("expected list error")
	}
	if err := c.ClearHistory(context.Background()); err == nil {
		t.Error("expected clear error")
	}

	disabled := &Client{}
	if err := disabled.ClearHistory(context.Background()); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("err = %v, want ErrHistoryDisabled", err)
	}
}

func TestHistory_Clear(t *testing.T) {
	cleared := false
	c := &Client{historySvc: &mockHistoryUC{clearFn: func(context.Context) error {
		cleared = true
		return nil
	}}}
	if err := c.ClearHistory(context.Background()); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	if !cleared {
		t.Error("clear not forwarded")
	}
}

func TestUsage_Mapping(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	c := &Client{usageSvc: &mockUsageUC{getReportFn: func(_ context.Context, p domusage.Period) (domusage.Report, error) {
		if p != domusage.PeriodMonth {
			t.Errorf("period = %q", p)
		}
		return domusage.NewReport(p, start.UnixMilli(), end.UnixMilli(), "gemini",
			metrics.New(1500, 0), budget.New(2000, 500, false, end.UnixMilli())), nil
	}}}

	u, err := c.Usage(context.Background(), PeriodMonth)
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if u.Period != PeriodMonth || !u.PeriodStart.Equal(start) || !u.PeriodEnd.Equal(end) {
		t.Errorf("period = %+v", u)
	}
	if u.Tokens != 1500 || u.Budget.TokensLimit != 2000 || u.Budget.TokensRemaining != 500 {
		t.Errorf("usage = %+v", u)
	}
	if !u.Budget.ResetsAt.Equal(end) {
		t.Errorf("resets_at = %v", u.Budget.ResetsAt)
	}
}

func TestUsage_InvalidPeriod(t *testing.T) {
	c, err := New(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Usage(context.Background(), "total"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestHealth_Mapping(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "llm": healthuc.CheckError},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["database"] != "ok" || h.Checks["llm"] != "error" {
		t.Errorf("health = %+v", h)
	}
}
