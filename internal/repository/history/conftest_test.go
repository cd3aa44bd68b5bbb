package history

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/kailas-cloud/navegador/internal/db"
	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
	domtriage "github.com/kailas-cloud/navegador/internal/domain/triage"
)

// memStore is a map-backed store; *Err fields inject failures.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func testItem(t *testing.T, n int) domhistory.Item {
	t.Helper()
	r, err := domtriage.New(
		fmt.Sprintf("Destino %d", n), "motivo", "endereço",
		[]string{"levar documento"}, domtriage.SeverityLow,
	)
	if err != nil {
		t.Fatalf("build result: %v", err)
	}
	return domhistory.New(fmt.Sprintf("id-%d", n), int64(1000+n), fmt.Sprintf("relato %d", n), r)
}
