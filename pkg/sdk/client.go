package navegador

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/db"
	dbRedis "github.com/kailas-cloud/navegador/internal/db/redis"
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
	domusage "github.com/kailas-cloud/navegador/internal/domain/usage"
	budgetrepo "github.com/kailas-cloud/navegador/internal/repository/budget"
	"github.com/kailas-cloud/navegador/internal/repository/catalog"
	historyrepo "github.com/kailas-cloud/navegador/internal/repository/history"
	openaiChat "github.com/kailas-cloud/navegador/internal/transport/openai"
	budgetuc "github.com/kailas-cloud/navegador/internal/usecase/budget"
	healthuc "github.com/kailas-cloud/navegador/internal/usecase/health"
	historyuc "github.com/kailas-cloud/navegador/internal/usecase/history"
	matchuc "github.com/kailas-cloud/navegador/internal/usecase/match"
	triageuc "github.com/kailas-cloud/navegador/internal/usecase/triage"
	usageuc "github.com/kailas-cloud/navegador/internal/usecase/usage"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultLLMTimeout       = 60 * time.Second
)

// Внутренние интерфейсы для подмены в тестах.
type matchUseCase interface {
	Match(attrs query.Attributes, topK int) ([]location.Scored, error)
	Catalog() location.Catalog
	Location(name string) (location.ServiceLocation, error)
}

type triageUseCase interface {
	Analyze(ctx context.Context, report string) (domtriage.Result, error)
}

type historyUseCase interface {
	Record(ctx context.Context, report string, result domtriage.Result) (domhistory.Item, error)
	List(ctx context.Context, limit int) ([]domhistory.Item, error)
	Clear(ctx context.Context) error
}

type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) (domusage.Report, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the navegador SDK entry point. Safe for concurrent use.
type Client struct {
	store      db.Store // nil without WithValkey/WithRedis
	matchSvc   matchUseCase
	triageSvc  triageUseCase  // nil without an LLM
	historySvc historyUseCase // nil without a database
	usageSvc   usageUseCase
	healthSvc  healthUseCase
	obs        *observer
}

// New creates a Client. The database is optional; when configured,
// the provided context bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		topK:        3,
		timezone:    triageuc.DefaultTimezone,
		llmTimeout:  defaultLLMTimeout,
		llmProvider: "gemini",
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("navegador: database not ready: %w", err)
		}
	}

	c, err := wireClient(ctx, store, cfg, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("navegador: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("navegador: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	locations, err := catalog.LoadOrDefault(cfg.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("navegador: load catalog: %w", err)
	}
	tz, err := time.LoadLocation(cfg.timezone)
	if err != nil {
		return nil, fmt.Errorf("navegador: timezone %q: %w", cfg.timezone, err)
	}

	matchSvc := matchuc.New(locations).WithTopK(cfg.topK)

	// Budget: in-memory unless a database persists the counters.
	var tracker *budgetuc.Tracker
	if cfg.dailyTokens > 0 || cfg.monthlyTokens > 0 {
		action := budgetuc.ActionWarn
		if cfg.rejectOnLimit {
			action = budgetuc.ActionReject
		}
		tracker = budgetuc.NewTracker(cfg.llmProvider, cfg.dailyTokens, cfg.monthlyTokens, action, zap.NewNop())
		if store != nil {
			tracker.WithStore(ctx, budgetrepo.New(store, 0, 0))
		}
	}
	var checker budgetuc.Checker
	var reader usageuc.BudgetReader
	if tracker != nil {
		checker = tracker
		reader = tracker
	}

	var triageSvc triageUseCase
	var llm healthuc.LLMChecker
	if cfg.llmAPIKey != "" {
		chat := openaiChat.NewChat(&openaiChat.Config{
			APIKey:            cfg.llmAPIKey,
			BaseURL:           cfg.llmBaseURL,
			Model:             cfg.llmModel,
			Provider:          cfg.llmProvider,
			RequestsPerSecond: cfg.llmRPS,
			Timeout:           cfg.llmTimeout,
		})
		instrumented := budgetuc.NewInstrumentedChat(chat, cfg.llmProvider, cfg.llmModel, checker, nil)
		svc := triageuc.New(instrumented, matchSvc, cfg.topK).WithLocation(tz)
		if cfg.maxReportChars > 0 {
			svc = svc.WithMaxReportChars(cfg.maxReportChars)
		}
		triageSvc = svc
		llm = chat
	}

	c := &Client{
		store:     store,
		matchSvc:  matchSvc,
		triageSvc: triageSvc,
		usageSvc:  usageuc.New(reader, cfg.llmProvider, 0),
		obs:       obs,
	}
	// Pass nil interfaces, not typed nil pointers.
	if store != nil {
		c.historySvc = historyuc.New(historyrepo.New(store, cfg.historyMax))
		c.healthSvc = healthuc.New(store, llm)
	} else {
		c.healthSvc = healthuc.New(nil, llm)
	}
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity. Without a database it always succeeds.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return nil
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

