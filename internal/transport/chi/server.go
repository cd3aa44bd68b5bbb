package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/domain"
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
	domusage "github.com/kailas-cloud/navegador/internal/domain/usage"
	logpkg "github.com/kailas-cloud/navegador/internal/logger"
	healthuc "github.com/kailas-cloud/navegador/internal/usecase/health"
	historyuc "github.com/kailas-cloud/navegador/internal/usecase/history"
	matchuc "github.com/kailas-cloud/navegador/internal/usecase/match"
	usageuc "github.com/kailas-cloud/navegador/internal/usecase/usage"
	"github.com/kailas-cloud/navegador/internal/version"
)

const (
	maxBodyBytes = 64 << 10
	maxTopK      = 50
)

// Analyzer turns a report into a recommendation (the cached triage chain).
type Analyzer interface {
	Analyze(ctx context.Context, report string) (domtriage.Result, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the JSON API.
type Server struct {
	triage        Analyzer
	matcher       *matchuc.Service
	history       *historyuc.Service
	usage         *usageuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	triage Analyzer,
	matcher *matchuc.Service,
	history *historyuc.Service,
	usage *usageuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		triage:  triage,
		matcher: matcher,
		history: history,
		usage:   usage,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMalformedResponse, http.StatusBadGateway, ErrorCodeMalformedResponse),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrQuotaExceeded, http.StatusPaymentRequired, ErrorCodeQuotaExceeded),
		sentinelHandler(domain.ErrLLMProviderError, http.StatusBadGateway, ErrorCodeProviderError),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chirouter.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chirouter.Router) {
		r.Post("/triage", s.Triage)
		r.Post("/match", s.Match)
		r.Get("/locations", s.ListLocations)
		r.Get("/locations/{name}", s.GetLocation)
		r.Get("/history", s.ListHistory)
		r.Delete("/history", s.ClearHistory)
		r.Get("/usage", s.GetUsage)
	})
}

// Triage handles POST /v1/triage.
func (s *Server) Triage(w http.ResponseWriter, r *http.Request) {
	var req TriageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	ctx = logpkg.With(ctx, zap.Int("report_chars", utf8.RuneCountInString(req.Report)))
	result, err := s.triage.Analyze(ctx, req.Report)
	setLLMHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	item, err := s.history.Record(r.Context(), req.Report, result)
	if err != nil {
		s.logger.Warn("Failed to record triage history", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, historyItemToDTO(item))
}

// Match handles POST /v1/match.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g := query.Gravidade(req.Gravidade)
	if g != "" && !g.IsValid() {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			"gravidade must be one of leve, moderada, grave")
		return
	}

	topK := 0
	if req.TopK != nil {
		if *req.TopK < 1 || *req.TopK > maxTopK {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				"top_k must be between 1 and "+strconv.Itoa(maxTopK))
			return
		}
		topK = *req.TopK
	}

	scored, err := s.matcher.Match(query.Attributes{
		Demanda:       req.Demanda,
		PerfilUsuario: req.PerfilUsuario,
		HorarioAtual:  req.HorarioAtual,
		Gravidade:     g,
	}, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]ScoredLocation, len(scored))
	for i, sc := range scored {
		items[i] = ScoredLocation{Location: locationToDTO(sc.Location()), Score: sc.Score()}
	}
	writeJSON(w, http.StatusOK, MatchResponse{Items: items, Total: len(items)})
}

// ListLocations handles GET /v1/locations.
func (s *Server) ListLocations(w http.ResponseWriter, _ *http.Request) {
	locs := s.matcher.Catalog().Locations()
	items := make([]Location, len(locs))
	for i, l := range locs {
		items[i] = locationToDTO(l)
	}
	writeJSON(w, http.StatusOK, LocationListResponse{Items: items, Total: len(items)})
}

// GetLocation handles GET /v1/locations/{name}.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	l, err := s.matcher.Location(chirouter.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locationToDTO(l))
}

// ListHistory handles GET /v1/history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	items, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]HistoryItem, len(items))
	for i, it := range items {
		out[i] = historyItemToDTO(it)
	}
	writeJSON(w, http.StatusOK, HistoryListResponse{Items: out, Total: len(out)})
}

// ClearHistory handles DELETE /v1/history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUsage handles GET /v1/usage.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	period := domusage.PeriodMonth
	if raw := r.URL.Query().Get("period"); raw != "" {
		period = domusage.Period(raw)
	}

	report, err := s.usage.GetReport(r.Context(), period)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := UsageResponse{
		Period:        string(report.Period()),
		Provider:      report.Provider(),
		PeriodStartAt: formatMillis(report.PeriodStart()),
		PeriodEndAt:   formatMillis(report.PeriodEnd()),
		Usage: UsageMetrics{
			Tokens: report.Metrics().Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}

	if cost := report.Metrics().CostMillidollars(); cost > 0 {
		resp.Usage.CostMillidollars = &cost
	}
	if report.Budget().ResetsAt() > 0 {
		resp.Budget.ResetsAt = formatMillis(report.Budget().ResetsAt())
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setLLMHeaders(w http.ResponseWriter, usage *domain.LLMUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-LLM-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
// Validation errors are built by the service itself and are returned as is.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrMalformedResponse) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrMalformedResponse,
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrQuotaExceeded,
		domain.ErrLLMProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func locationToDTO(l location.ServiceLocation) Location {
	return Location{
		Name:    l.Name(),
		Address: l.Address(),
		Contact: l.Contact(),
		Tags:    l.Tags(),
	}
}

func historyItemToDTO(it domhistory.Item) HistoryItem {
	r := it.Result()
	return HistoryItem{
		ID:             it.ID(),
		Timestamp:      it.Timestamp(),
		OriginalQuery:  it.OriginalQuery(),
		Destination:    r.Destination(),
		Justification:  r.Justification(),
		AddressContact: r.AddressContact(),
		Procedures:     r.Procedures(),
		SeverityLevel:  string(r.Severity()),
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
