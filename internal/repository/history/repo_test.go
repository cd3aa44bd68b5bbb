package history

import (
	"context"
	"errors"
	"sync"
	"testing"

	domhistory "github.com/kailas-cloud/navegador/internal/domain/history"
)

func TestAdd_NewestFirst(t *testing.T) {
	ms := newMemStore()
	repo := New(ms, 10)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := repo.Add(ctx, testItem(t, i)); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	items, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"id-3", "id-2", "id-1"} {
		if items[i].ID() != want {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID(), want)
		}
	}
	if items[0].Result().Destination() != "Destino 3" || items[0].OriginalQuery() != "relato 3" {
		t.Errorf("item not round-tripped: %+v", items[0])
	}
	if _, ok := ms.data["navegador:history"]; !ok {
		t.Error("expected history under navegador:history")
	}
}

func TestAdd_Cap(t *testing.T) {
	repo := New(newMemStore(), 2)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := repo.Add(ctx, testItem(t, i)); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	items, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ID() != "id-5" || items[1].ID() != "id-4" {
		t.Fatalf("unexpected items after cap: %d", len(items))
	}
}

func TestNew_DefaultCap(t *testing.T) {
	if repo := New(newMemStore(), 0); repo.maxItems != DefaultMaxItems {
		t.Errorf("maxItems = %d", repo.maxItems)
	}
}

func TestList_Limit(t *testing.T) {
	repo := New(newMemStore(), 10)
	ctx := context.Background()
	for i := 1; i <= 4; i++ {
		_ = repo.Add(ctx, testItem(t, i))
	}

	items, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ID() != "id-4" {
		t.Errorf("unexpected limited list: %d", len(items))
	}

	items, _ = repo.List(ctx, 100)
	if len(items) != 4 {
		t.Errorf("limit above size must return all, got %d", len(items))
	}
}

func TestList_Empty(t *testing.T) {
	items, err := New(newMemStore(), 10).List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %d", len(items))
	}
}

func TestList_CorruptData(t *testing.T) {
	ms := newMemStore()
	ms.data[historyKey] = []byte("{oops")

	if _, err := New(ms, 10).List(context.Background(), 0); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestClear(t *testing.T) {
	repo := New(newMemStore(), 10)
	ctx := context.Background()
	_ = repo.Add(ctx, testItem(t, 1))

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	items, _ := repo.List(ctx, 0)
	if len(items) != 0 {
		t.Errorf("expected empty history after Clear, got %d", len(items))
	}
}

func TestStoreErrors(t *testing.T) {
	boom := errors.New("connection lost")
	ctx := context.Background()

	ms := newMemStore()
	ms.getErr = boom
	if err := New(ms, 10).Add(ctx, testItem(t, 1)); !errors.Is(err, boom) {
		t.Errorf("Add with GET failure: %v", err)
	}
	if _, err := New(ms, 10).List(ctx, 0); !errors.Is(err, boom) {
		t.Errorf("List with GET failure: %v", err)
	}

	ms = newMemStore()
	ms.setErr = boom
	if err := New(ms, 10).Add(ctx, testItem(t, 1)); !errors.Is(err, boom) {
		t.Errorf("Add with SET failure: %v", err)
	}

	ms = newMemStore()
	ms.delErr = boom
	if err := New(ms, 10).Clear(ctx); !errors.Is(err, boom) {
		t.Errorf("Clear with DEL failure: %v", err)
	}
}

func TestAdd_Concurrent(t *testing.T) {
	repo := New(newMemStore(), 100)
	ctx := context.Background()

	items := make([]domhistory.Item, 20)
	for i := range items {
		items[i] = testItem(t, i)
	}

	var wg sync.WaitGroup
	for _, it := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Add(ctx, it)
		}()
	}
	wg.Wait()

	got, _ := repo.List(ctx, 0)
	if len(got) != 20 {
		t.Errorf("expected 20 items, got %d", len(got))
	}
}
