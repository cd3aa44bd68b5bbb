package history

import (
	"context"

	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
)

// Repository stores completed triages.
type Repository interface {
	Add(ctx context.Context, item domhistory.Item) error
	List(ctx context.Context, limit int) ([]domhistory.Item, error)
	Clear(ctx context.Context) error
}
