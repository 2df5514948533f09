package entity

import (
	"errors"
	"testing"
	"time"
)

func TestNewListRequiresNameAndImage(t *testing.T) {
	if _, err := NewList("", "http://x/img.png", "", nil, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := NewList("Groceries", "", "", nil, time.Now()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing image url, got %v", err)
	}
	l, err := NewList("Groceries", "http://x/img.png", "weekly run", []string{"Milk", "Eggs"}, time.Now())
	if err != nil {
		t.Fatalf("NewList() error = %v", err)
	}
	if l.ID == "" {
		t.Fatal("expected a fresh list id")
	}
	if len(l.Items) != 2 || len(l.CompletedItems) != 0 {
		t.Fatalf("unexpected initial collections: %d active, %d completed", len(l.Items), len(l.CompletedItems))
	}
}

func TestCompleteItemKeepsIDAndRefreshesDate(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	completed := created.Add(2 * time.Hour)

	l, _ := NewList("Groceries", "http://x/img.png", "", nil, created)
	it, err := l.AddItem("Milk", created)
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if err := l.CompleteItem(it.ID, completed); err != nil {
		t.Fatalf("CompleteItem() error = %v", err)
	}
	if len(l.Items) != 0 {
		t.Fatalf("expected empty active collection, got %d items", len(l.Items))
	}
	if len(l.CompletedItems) != 1 {
		t.Fatalf("expected one completed item, got %d", len(l.CompletedItems))
	}
	got := l.CompletedItems[0]
	if got.ID != it.ID {
		t.Fatalf("item id changed across move: %s != %s", got.ID, it.ID)
	}
	if !got.Date.Equal(completed) {
		t.Fatalf("expected completion timestamp %v, got %v", completed, got.Date)
	}
}

func TestCompleteItemTwiceFailsAndLeavesStateUntouched(t *testing.T) {
	now := time.Now()
	l, _ := NewList("Groceries", "http://x/img.png", "", []string{"Milk"}, now)
	id := l.Items[0].ID

	if err := l.CompleteItem(id, now); err != nil {
		t.Fatalf("first CompleteItem() error = %v", err)
	}
	if err := l.CompleteItem(id, now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second completion, got %v", err)
	}
	if len(l.Items) != 0 || len(l.CompletedItems) != 1 {
		t.Fatalf("state changed by failed completion: %d active, %d completed", len(l.Items), len(l.CompletedItems))
	}
}

func TestActiveAndCompletedIDsStayDisjoint(t *testing.T) {
	now := time.Now()
	l, _ := NewList("Chores", "http://x/img.png", "", []string{"Sweep", "Mop", "Dust"}, now)
	first := l.Items[0].ID

	if err := l.CompleteItem(first, now); err != nil {
		t.Fatalf("CompleteItem() error = %v", err)
	}
	seen := map[string]bool{}
	for _, it := range l.Items {
		seen[it.ID] = true
	}
	for _, it := range l.CompletedItems {
		if seen[it.ID] {
			t.Fatalf("item id %s present in both collections", it.ID)
		}
	}
}

func TestDeleteCompletedItemOnly(t *testing.T) {
	now := time.Now()
	l, _ := NewList("Chores", "http://x/img.png", "", []string{"Sweep"}, now)
	id := l.Items[0].ID

	// Active items are not deletable, only completable.
	if err := l.DeleteCompletedItem(id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting an active item, got %v", err)
	}
	if err := l.CompleteItem(id, now); err != nil {
		t.Fatalf("CompleteItem() error = %v", err)
	}
	if err := l.DeleteCompletedItem(id); err != nil {
		t.Fatalf("DeleteCompletedItem() error = %v", err)
	}
	if len(l.CompletedItems) != 0 {
		t.Fatalf("expected empty completed collection, got %d", len(l.CompletedItems))
	}
}

func TestListByNameLastMatchWins(t *testing.T) {
	u := &User{}
	a, _ := NewList("Groceries", "http://x/a.png", "", nil, time.Now())
	b, _ := NewList("Groceries", "http://x/b.png", "", nil, time.Now())
	u.AddList(a)
	u.AddList(b)

	got := u.ListByName("Groceries")
	if got == nil || got.ID != b.ID {
		t.Fatalf("expected last matching list %s, got %+v", b.ID, got)
	}
	if u.ListByName("Nope") != nil {
		t.Fatal("expected nil for unknown name")
	}
}

func TestResolveListPrefersID(t *testing.T) {
	u := &User{}
	a, _ := NewList("Groceries", "http://x/a.png", "", nil, time.Now())
	b, _ := NewList("Groceries", "http://x/b.png", "", nil, time.Now())
	u.AddList(a)
	u.AddList(b)

	got := u.ResolveList(ListRef{ID: a.ID, Name: "Groceries"})
	if got == nil || got.ID != a.ID {
		t.Fatalf("expected id match %s, got %+v", a.ID, got)
	}
}

func TestUpdateListPreservesItems(t *testing.T) {
	u := &User{}
	l, _ := NewList("Groceries", "http://x/a.png", "old", []string{"Milk"}, time.Now())
	u.AddList(l)

	if _, err := u.UpdateList(l.ID, "", "body", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty name, got %v", err)
	}
	if _, err := u.UpdateList("missing", "Name", "body", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	got, err := u.UpdateList(l.ID, "Weekly Groceries", "new body", "")
	if err != nil {
		t.Fatalf("UpdateList() error = %v", err)
	}
	if got.Name != "Weekly Groceries" || got.Body != "new body" {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.ImageURL != "http://x/a.png" {
		t.Fatalf("empty image url should keep current image, got %s", got.ImageURL)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Milk" {
		t.Fatalf("item collections must survive an update: %+v", got.Items)
	}
}

func TestRemoveListReturnsImageRef(t *testing.T) {
	u := &User{}
	l, _ := NewList("Groceries", "http://cdn.example.com/cards/grocer.png", "", nil, time.Now())
	u.AddList(l)

	ref, err := u.RemoveList(l.ID)
	if err != nil {
		t.Fatalf("RemoveList() error = %v", err)
	}
	if ref != "grocer.png" {
		t.Fatalf("expected image ref grocer.png, got %s", ref)
	}
	if len(u.Lists) != 0 {
		t.Fatalf("expected no lists left, got %d", len(u.Lists))
	}
	if _, err := u.RemoveList(l.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing twice, got %v", err)
	}
}

func TestDailyList(t *testing.T) {
	l := DailyList()
	if l.Name != DailyListName {
		t.Fatalf("expected %q, got %q", DailyListName, l.Name)
	}
	if l.ImageURL == "" || l.Body == "" {
		t.Fatal("daily list must carry its seeded image and body")
	}
	if len(l.Items) != 0 || len(l.CompletedItems) != 0 {
		t.Fatal("daily list must start empty")
	}
}
