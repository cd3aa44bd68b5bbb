package domain

import "errors"

// KeyPrefix namespaces every key written to the store.
const KeyPrefix = "navegador:"

var (
	// ErrInvalidInput signals a request the service cannot act on (empty catalog, empty report).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrQuotaExceeded signals an exhausted language model token budget.
	ErrQuotaExceeded = errors.New("llm quota exceeded")
	// ErrLLMProviderError signals a language model provider failure.
	ErrLLMProviderError = errors.New("llm provider error")
	// ErrMalformedResponse signals a model answer that could not be turned into a triage result,
	// even after the repair call.
	ErrMalformedResponse = errors.New("malformed llm response")
)
