package navegador

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Gemini OpenAI-compatible endpoint and default model.
const (
	GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	GeminiModel   = "gemini-2.5-flash"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "valkey" or "redis"; empty = no database
	addrs      []string
	password   string
	standalone bool

	llmAPIKey   string
	llmBaseURL  string
	llmModel    string
	llmProvider string
	llmTimeout  time.Duration
	llmRPS      float64

	catalogPath    string
	topK           int
	timezone       string
	maxReportChars int
	historyMax     int

	dailyTokens   int64
	monthlyTokens int64
	rejectOnLimit bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey persists history and token counters in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis persists history and token counters in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithGemini enables triage through Gemini's OpenAI-compatible endpoint.
func WithGemini(apiKey string) Option {
	return WithLLM("gemini", GeminiBaseURL, apiKey, GeminiModel)
}

// WithLLM enables triage through any OpenAI-compatible chat endpoint.
func WithLLM(provider, baseURL, apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.llmProvider = provider
		c.llmBaseURL = baseURL
		c.llmAPIKey = apiKey
		c.llmModel = model
	})
}

// WithLLMTimeout bounds a single model round trip. Default: 60s.
func WithLLMTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.llmTimeout = d
	})
}

// WithLLMRateLimit caps outgoing model calls per second. 0 disables the limiter (default).
func WithLLMRateLimit(rps float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.llmRPS = rps
	})
}

// WithCatalogFile loads service locations from a YAML file instead of the embedded catalog.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
	})
}

// WithTopK sets the default number of locations returned by Match. Default: 3.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithTimezone sets the zone of the clock hint sent to the model.
// Default: America/Sao_Paulo.
func WithTimezone(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.timezone = name
	})
}

// WithMaxReportChars caps the report length accepted by Triage. Default: 4000.
func WithMaxReportChars(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxReportChars = n
	})
}

// WithHistoryLimit caps the number of stored triages. Default: 50.
func WithHistoryLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.historyMax = n
	})
}

// WithTokenBudget limits model token consumption. Zero limits are unlimited.
// reject=false only logs when the budget runs out.
func WithTokenBudget(daily, monthly int64, reject bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyTokens = daily
		c.monthlyTokens = monthly
		c.rejectOnLimit = reject
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
