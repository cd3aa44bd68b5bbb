package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
)

// Service records and lists completed triages.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates a history service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Record wraps result into a new item and stores it.
// The item is returned even when storing fails, so callers can still answer.
func (s *Service) Record(ctx context.Context, report string, result domtriage.Result) (domhistory.Item, error) {
	item := domhistory.New(s.newID(), s.now().UnixMilli(), report, result)
	if err := s.repo.Add(ctx, item); err != nil {
		return item, fmt.Errorf("record history: %w", err)
	}
	return item, nil
}

// List returns up to limit items, newest first. limit <= 0 returns all.
func (s *Service) List(ctx context.Context, limit int) ([]domhistory.Item, error) {
	items, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return items, nil
}

// Clear removes every item.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
