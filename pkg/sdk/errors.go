package navegador

import (
	"errors"

	"github.com/kailas-cloud/navegador/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput      = domain.ErrInvalidInput
	ErrNotFound          = domain.ErrNotFound
	ErrRateLimited       = domain.ErrRateLimited
	ErrQuotaExceeded     = domain.ErrQuotaExceeded
	ErrLLMProviderError  = domain.ErrLLMProviderError
	ErrMalformedResponse = domain.ErrMalformedResponse
)

var (
	// ErrLLMNotConfigured is returned by Triage when no model was configured.
	ErrLLMNotConfigured = errors.New("navegador: language model not configured (use WithGemini or WithLLM)")
	// ErrHistoryDisabled is returned by history calls when no database was configured.
	ErrHistoryDisabled = errors.New("navegador: history requires a database (use WithValkey or WithRedis)")
)
