package triagecache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/navegador/internal/db"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
)

type mockAnalyzer struct {
	result domtriage.Result
	err    error
	calls  int
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ string) (domtriage.Result, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func mustResult(t *testing.T, destination string) domtriage.Result {
	t.Helper()
	r, err := domtriage.New(destination, "motivo", "endereço", []string{"passo 1"}, domtriage.SeverityMedium)
	if err != nil {
		t.Fatalf("build result: %v", err)
	}
	return r
}

func newTestCachedAnalyzer(t *testing.T, inner *mockAnalyzer, clock string) (*CachedAnalyzer, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	ca := New(inner, ms, time.Hour, func() string { return clock }, nil, zap.NewNop())
	return ca, ms
}
