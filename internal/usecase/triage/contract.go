package triage

import (
	"context"

	"github.com/kailas-cloud/navegador/internal/domain"
	"github.com/kailas-cloud/navegador/internal/domain/location"
	"github.com/kailas-cloud/navegador/internal/domain/query"
)

// ChatModel sends one chat completion round.
type ChatModel interface {
	Complete(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
}

// Matcher ranks service locations for extracted attributes.
type Matcher interface {
	Match(attrs query.Attributes, topK int) ([]location.Scored, error)
}
