package domain

import "context"

type llmUsageKey struct{}

// LLMUsage collects token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the service writes after every completion; the handler reads it for response headers.
type LLMUsage struct {
	TotalTokens int
	Calls       int
	Used        bool // true if the model was consulted, even when served from cache with 0 tokens
}

// NewContextWithUsage returns a context with an attached usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *LLMUsage) {
	u := &LLMUsage{}
	return context.WithValue(ctx, llmUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *LLMUsage {
	u, _ := ctx.Value(llmUsageKey{}).(*LLMUsage)
	return u
}

// AddTokens records tokens consumed by one completion call.
func (u *LLMUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Calls++
		u.Used = true
	}
}

// MarkUsed flags the request as served by the triage pipeline without new tokens.
func (u *LLMUsage) MarkUsed() {
	if u != nil {
		u.Used = true
	}
}
