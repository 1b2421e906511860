package firestore

import (
	"testing"

	"github.com/lromero86/tacopos-api/internal/domain/repository"
)

func TestScopePath(t *testing.T) {
	got := ScopePath("op-1", "2024-03-07", repository.CollectionOrders)
	want := "users/op-1/dates/2024-03-07/orders"
	if got != want {
		t.Errorf("ScopePath = %q, want %q", got, want)
	}
}

func TestScopePathIsolation(t *testing.T) {
	// Two dates for one operator, and one date for two operators,
	// must all land in distinct collections.
	paths := map[string]bool{
		ScopePath("op-1", "2024-03-07", repository.CollectionOrders):   true,
		ScopePath("op-1", "2024-03-08", repository.CollectionOrders):   true,
		ScopePath("op-2", "2024-03-07", repository.CollectionOrders):   true,
		ScopePath("op-1", "2024-03-07", repository.CollectionExpenses): true,
	}
	if len(paths) != 4 {
		t.Errorf("expected 4 distinct paths, got %d", len(paths))
	}
}
