package navegador

import (
	"context"
	"fmt"
	"time"

	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
)

// History returns up to limit recorded triages, newest first. limit <= 0 returns all.
func (c *Client) History(ctx context.Context, limit int) (_ []HistoryItem, err error) {
	start := time.Now()
	defer func() { c.obs.observe("history_list", start, err) }()

	if c.historySvc == nil {
		return nil, ErrHistoryDisabled
	}
	items, err := c.historySvc.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	out := make([]HistoryItem, len(items))
	for i, it := range items {
		out[i] = historyFromDomain(it)
	}
	return out, nil
}

// ClearHistory removes every recorded triage.
func (c *Client) ClearHistory(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("history_clear", start, err) }()

	if c.historySvc == nil {
		return ErrHistoryDisabled
	}
	if err = c.historySvc.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func historyFromDomain(it domhistory.Item) HistoryItem {
	return HistoryItem{
		ID:            it.ID(),
		Timestamp:     time.UnixMilli(it.Timestamp()).UTC(),
		OriginalQuery: it.OriginalQuery(),
		Result:        triageFromDomain(it.Result()),
	}
}
