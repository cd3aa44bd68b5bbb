package chi

// ErrorCode is the machine-readable error identifier returned to clients.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed  ErrorCode = "method_not_allowed"
	ErrorCodeRateLimited       ErrorCode = "rate_limited"
	ErrorCodeQuotaExceeded     ErrorCode = "llm_quota_exceeded"
	ErrorCodeProviderError     ErrorCode = "llm_provider_error"
	ErrorCodeMalformedResponse ErrorCode = "malformed_llm_response"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// TriageRequest is the body of POST /v1/triage.
type TriageRequest struct {
	Report string `json:"report"`
}

// HistoryItem is a completed triage as returned by /v1/triage and /v1/history.
type HistoryItem struct {
	ID             string   `json:"id"`
	Timestamp      int64    `json:"timestamp"`
	OriginalQuery  string   `json:"original_query"`
	Destination    string   `json:"destination"`
	Justification  string   `json:"justification"`
	AddressContact string   `json:"address_contact"`
	Procedures     []string `json:"procedures"`
	SeverityLevel  string   `json:"severity_level"`
}

// HistoryListResponse is the body of GET /v1/history.
type HistoryListResponse struct {
	Items []HistoryItem `json:"items"`
	Total int           `json:"total"`
}

// MatchRequest is the body of POST /v1/match.
type MatchRequest struct {
	Demanda       string `json:"demanda"`
	PerfilUsuario string `json:"perfil_usuario"`
	HorarioAtual  string `json:"horario_atual"`
	Gravidade     string `json:"gravidade"`
	TopK          *int   `json:"top_k,omitempty"`
}

// Location is one catalog entry.
type Location struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Contact string   `json:"contact"`
	Tags    []string `json:"tags"`
}

// ScoredLocation is a ranked catalog entry.
type ScoredLocation struct {
	Location Location `json:"location"`
	Score    int      `json:"score"`
}

// MatchResponse is the body of POST /v1/match.
type MatchResponse struct {
	Items []ScoredLocation `json:"items"`
	Total int              `json:"total"`
}

// LocationListResponse is the body of GET /v1/locations.
type LocationListResponse struct {
	Items []Location `json:"items"`
	Total int        `json:"total"`
}

// UsageMetrics holds consumption for the reported period.
type UsageMetrics struct {
	Tokens           int64  `json:"tokens"`
	CostMillidollars *int64 `json:"cost_millidollars,omitempty"`
}

// BudgetStatus is the token budget snapshot.
type BudgetStatus struct {
	TokensLimit     int64  `json:"tokens_limit"`
	TokensRemaining int64  `json:"tokens_remaining"`
	IsExhausted     bool   `json:"is_exhausted"`
	ResetsAt        string `json:"resets_at,omitempty"`
}

// UsageResponse is the body of GET /v1/usage.
type UsageResponse struct {
	Period        string       `json:"period"`
	Provider      string       `json:"provider,omitempty"`
	PeriodStartAt string       `json:"period_start_at"`
	PeriodEndAt   string       `json:"period_end_at"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
