package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kailas-cloud/navegador/internal/db"
	"github.com/kailas-cloud/navegador/internal/domain"
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
)

// DefaultMaxItems caps the stored list when no limit is configured.
const DefaultMaxItems = 50

var historyKey = domain.KeyPrefix + "history"

// store is the consumer interface for the history list (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo keeps the history as one JSON array, newest first.
// Writes are serialized in-process; a single instance owns the key.
type Repo struct {
	mu       sync.Mutex
	store    store
	maxItems int
}

// New creates a history repository.
func New(s store, maxItems int) *Repo {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Repo{store: s, maxItems: maxItems}
}

// Add prepends item and drops entries beyond the cap.
func (r *Repo) Add(ctx context.Context, item domhistory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return err
	}

	items = append([]itemDTO{fromDomain(item)}, items...)
	if len(items) > r.maxItems {
		items = items[:r.maxItems]
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := r.store.Set(ctx, historyKey, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// List returns up to limit items, newest first. limit <= 0 returns all.
func (r *Repo) List(ctx context.Context, limit int) ([]domhistory.Item, error) {
	r.mu.Lock()
	items, err := r.load(ctx)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	out := make([]domhistory.Item, 0, len(items))
	for _, dto := range items {
		it, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("convert history item %s: %w", dto.ID, err)
		}
		out = append(out, it)
	}
	return out, nil
}

// Clear removes every item.
func (r *Repo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Del(ctx, historyKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (r *Repo) load(ctx context.Context) ([]itemDTO, error) {
	data, err := r.store.Get(ctx, historyKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []itemDTO
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return items, nil
}
