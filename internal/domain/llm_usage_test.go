package domain

import (
	"context"
	"testing"
)

func TestUsageFromContext_NotSet(t *testing.T) {
	if u := UsageFromContext(context.Background()); u != nil {
		t.Fatalf("expected nil usage, got %+v", u)
	}
}

func TestLLMUsage_AddTokens(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())

	UsageFromContext(ctx).AddTokens(120)
	UsageFromContext(ctx).AddTokens(30)

	if u.TotalTokens != 150 {
		t.Errorf("TotalTokens = %d, want 150", u.TotalTokens)
	}
	if u.Calls != 2 {
		t.Errorf("Calls = %d, want 2", u.Calls)
	}
	if !u.Used {
		t.Error("expected Used=true")
	}
}

func TestLLMUsage_NilSafe(t *testing.T) {
	var u *LLMUsage
	u.AddTokens(10)
	u.MarkUsed()
}

func TestLLMUsage_MarkUsed(t *testing.T) {
	_, u := NewContextWithUsage(context.Background())
	u.MarkUsed()
	if !u.Used || u.TotalTokens != 0 || u.Calls != 0 {
		t.Errorf("unexpected usage after MarkUsed: %+v", u)
	}
}
