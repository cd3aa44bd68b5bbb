package budget

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/domain"
	"github.com/kailas-cloud/navegador/internal/metrics"
)

// Checker is the local interface for budget enforcement.
type Checker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedChat wraps a ChatModel with budget enforcement, per-request
// usage accounting and logging. Transport metrics live in transport/openai.
type InstrumentedChat struct {
	inner    domain.ChatModel
	provider string
	model    string
	budget   Checker
	logger   *zap.Logger
}

// NewInstrumentedChat wraps a chat model. budget may be nil.
func NewInstrumentedChat(
	inner domain.ChatModel, provider, model string,
	budget Checker, logger *zap.Logger,
) *InstrumentedChat {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedChat{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Complete checks the budget, delegates to the inner model and records usage.
func (p *InstrumentedChat) Complete(
	ctx context.Context, req domain.ChatRequest,
) (domain.ChatResponse, error) {
	if p.budget != nil {
		if err := p.budget.Check(ctx); err != nil {
			p.logger.Error("Budget exceeded",
				zap.String("provider", p.provider),
				zap.String("model", p.model),
				zap.Error(err),
			)
			return domain.ChatResponse{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()

	resp, err := p.inner.Complete(ctx, req)

	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Chat request failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Int("messages", len(req.Messages)),
			zap.Error(err),
		)
		return domain.ChatResponse{}, fmt.Errorf("chat: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(resp.TotalTokens)

	if p.budget != nil && resp.TotalTokens > 0 {
		p.budget.Record(int64(resp.TotalTokens))
		gauge := metrics.LLMBudgetTokensRemaining
		gauge.WithLabelValues(p.provider, "daily").Set(float64(p.budget.RemainingDaily()))
		gauge.WithLabelValues(p.provider, "monthly").Set(float64(p.budget.RemainingMonthly()))
	}

	p.logger.Debug("Chat request completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("messages", len(req.Messages)),
		zap.Int("tool_calls", len(resp.Message.ToolCalls)),
		zap.Bool("json_mode", req.JSONMode),
		zap.Int("prompt_tokens", resp.PromptTokens),
		zap.Int("total_tokens", resp.TotalTokens),
	)

	return resp, nil
}
