package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/todocards/api/internal/domain/entity"
)

func newTodoFixture(t *testing.T) (*fakeUserRepo, *TodoService, *entity.User) {
	t.Helper()
	repo := newFakeUserRepo()
	svc := NewTodoService(repo, nil)
	u := &entity.User{
		Name:  "Alice",
		Email: "alice@example.com",
		Lists: []entity.List{entity.DailyList()},
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return repo, svc, u
}

func TestListAllReturnsDailyHint(t *testing.T) {
	_, svc, u := newTodoFixture(t)

	res, err := svc.ListAll(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(res.Lists) != 1 || res.Lists[0].Name != entity.DailyListName {
		t.Fatalf("expected the seeded Daily list, got %+v", res.Lists)
	}
	if res.DefaultListName != entity.DailyListName {
		t.Fatalf("expected default list hint %q, got %q", entity.DailyListName, res.DefaultListName)
	}
}

func TestListAllUnknownUser(t *testing.T) {
	_, svc, _ := newTodoFixture(t)

	if _, err := svc.ListAll(context.Background(), "user-999"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateListValidatesAndPersists(t *testing.T) {
	repo, svc, u := newTodoFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateList(ctx, u.ID, CreateListInput{Name: "", ImageURL: "http://x/img.png"}); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	res, err := svc.CreateList(ctx, u.ID, CreateListInput{Name: "Groceries", ImageURL: "http://x/img.png", Body: "weekly", Items: []string{"Milk"}})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if len(res.Lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(res.Lists))
	}
	if res.DefaultListName != "Groceries" {
		t.Fatalf("expected default list hint Groceries, got %q", res.DefaultListName)
	}

	// The returned state is the durably stored one.
	stored, _ := repo.GetByID(ctx, u.ID)
	if len(stored.Lists) != 2 || stored.Lists[1].Name != "Groceries" {
		t.Fatalf("list not persisted: %+v", stored.Lists)
	}
	if len(stored.Lists[1].Items) != 1 || stored.Lists[1].Items[0].Name != "Milk" {
		t.Fatalf("initial items not persisted: %+v", stored.Lists[1].Items)
	}
}

func TestUpdateListRequiresNameAndBody(t *testing.T) {
	_, svc, u := newTodoFixture(t)
	ctx := context.Background()
	listID := u.Lists[0].ID

	if _, err := svc.UpdateList(ctx, u.ID, UpdateListInput{ListID: listID, Name: "Daily", Body: ""}); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateList(ctx, u.ID, UpdateListInput{ListID: "missing", Name: "N", Body: "B"}); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	res, err := svc.UpdateList(ctx, u.ID, UpdateListInput{ListID: listID, Name: "Routines", Body: "morning routines"})
	if err != nil {
		t.Fatalf("UpdateList() error = %v", err)
	}
	if res.DefaultListName != "Routines" {
		t.Fatalf("expected hint Routines, got %q", res.DefaultListName)
	}
	if res.Lists[0].Name != "Routines" || res.Lists[0].Body != "morning routines" {
		t.Fatalf("update not reflected: %+v", res.Lists[0])
	}
}

func TestDeleteListReturnsImageRefAndDailyHint(t *testing.T) {
	_, svc, u := newTodoFixture(t)
	ctx := context.Background()

	created, err := svc.CreateList(ctx, u.ID, CreateListInput{Name: "Groceries", ImageURL: "http://cdn.example.com/cards/grocer.png"})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	listID := created.Lists[1].ID

	res, err := svc.DeleteList(ctx, u.ID, listID)
	if err != nil {
		t.Fatalf("DeleteList() error = %v", err)
	}
	if res.RemovedImage != "grocer.png" {
		t.Fatalf("expected removed image grocer.png, got %q", res.RemovedImage)
	}
	if res.DefaultListName != entity.DailyListName {
		t.Fatalf("expected Daily hint after delete, got %q", res.DefaultListName)
	}
	if len(res.Lists) != 1 {
		t.Fatalf("expected 1 remaining list, got %d", len(res.Lists))
	}

	if _, err := svc.DeleteList(ctx, u.ID, listID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

// Walks the full item lifecycle: add, complete, delete from completed.
func TestItemLifecycleScenario(t *testing.T) {
	_, svc, u := newTodoFixture(t)
	ctx := context.Background()

	if _, err := svc.CreateList(ctx, u.ID, CreateListInput{Name: "Groceries", ImageURL: "http://x/img.png"}); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}

	ref := entity.ListRef{Name: "Groceries"}
	res, err := svc.AddItem(ctx, u.ID, ref, "Milk")
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	groceries := findList(t, res.Lists, "Groceries")
	if len(groceries.Items) != 1 || groceries.Items[0].Name != "Milk" {
		t.Fatalf("unexpected active items: %+v", groceries.Items)
	}
	itemID := groceries.Items[0].ID

	before := time.Now()
	res, err = svc.CompleteItem(ctx, u.ID, ref, itemID)
	if err != nil {
		t.Fatalf("CompleteItem() error = %v", err)
	}
	groceries = findList(t, res.Lists, "Groceries")
	if len(groceries.Items) != 0 || len(groceries.CompletedItems) != 1 {
		t.Fatalf("move not atomic: %d active, %d completed", len(groceries.Items), len(groceries.CompletedItems))
	}
	done := groceries.CompletedItems[0]
	if done.ID != itemID {
		t.Fatalf("item id changed across move: %s != %s", done.ID, itemID)
	}
	if done.Date.Before(before.Add(-time.Second)) {
		t.Fatalf("completion timestamp not refreshed: %v", done.Date)
	}

	// Completing again must fail without changing state.
	if _, err := svc.CompleteItem(ctx, u.ID, ref, itemID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second completion, got %v", err)
	}
	check, _ := svc.ListAll(ctx, u.ID)
	groceries = findList(t, check.Lists, "Groceries")
	if len(groceries.CompletedItems) != 1 {
		t.Fatalf("failed completion changed state: %+v", groceries)
	}

	res, err = svc.DeleteCompletedItem(ctx, u.ID, ref, itemID)
	if err != nil {
		t.Fatalf("DeleteCompletedItem() error = %v", err)
	}
	groceries = findList(t, res.Lists, "Groceries")
	if len(groceries.CompletedItems) != 0 {
		t.Fatalf("expected empty completed collection, got %+v", groceries.CompletedItems)
	}
}

func TestAddItemUnknownList(t *testing.T) {
	_, svc, u := newTodoFixture(t)

	if _, err := svc.AddItem(context.Background(), u.ID, entity.ListRef{Name: "Nope"}, "Milk"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// A user's credential must never reach another user's lists; foreign ids
// resolve to not-found, not to the other owner's data.
func TestOwnershipIsolation(t *testing.T) {
	repo, svc, alice := newTodoFixture(t)
	ctx := context.Background()

	bob := &entity.User{Name: "Bob", Email: "bob@example.com", Lists: []entity.List{entity.DailyList()}}
	if err := repo.Create(ctx, bob); err != nil {
		t.Fatalf("seed bob: %v", err)
	}
	created, err := svc.CreateList(ctx, bob.ID, CreateListInput{Name: "Secrets", ImageURL: "http://x/s.png"})
	if err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	bobsListID := created.Lists[1].ID

	if _, err := svc.DeleteList(ctx, alice.ID, bobsListID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner delete, got %v", err)
	}
	if _, err := svc.AddItem(ctx, alice.ID, entity.ListRef{ID: bobsListID}, "peek"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for cross-owner add, got %v", err)
	}

	bobState, _ := svc.ListAll(ctx, bob.ID)
	if len(bobState.Lists) != 2 {
		t.Fatalf("bob's lists were touched: %+v", bobState.Lists)
	}
	secrets := findList(t, bobState.Lists, "Secrets")
	if len(secrets.Items) != 0 {
		t.Fatalf("bob's list gained items: %+v", secrets.Items)
	}
}

func TestConflictRetrySucceeds(t *testing.T) {
	repo, svc, u := newTodoFixture(t)
	repo.conflictsToInject = 2

	res, err := svc.AddItem(context.Background(), u.ID, entity.ListRef{Name: entity.DailyListName}, "Milk")
	if err != nil {
		t.Fatalf("expected retry to absorb conflicts, got %v", err)
	}
	if repo.saveCalls != 3 {
		t.Fatalf("expected 3 save attempts, got %d", repo.saveCalls)
	}
	daily := findList(t, res.Lists, entity.DailyListName)
	if len(daily.Items) != 1 {
		t.Fatalf("mutation lost across retries: %+v", daily.Items)
	}
}

func TestConflictSurfacesAfterRetriesExhausted(t *testing.T) {
	repo, svc, u := newTodoFixture(t)
	repo.conflictsToInject = saveAttempts

	_, err := svc.AddItem(context.Background(), u.ID, entity.ListRef{Name: entity.DailyListName}, "Milk")
	if !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("expected ErrConflict after %d attempts, got %v", saveAttempts, err)
	}
	if repo.saveCalls != saveAttempts {
		t.Fatalf("expected %d save attempts, got %d", saveAttempts, repo.saveCalls)
	}
}

func findList(t *testing.T, lists []entity.List, name string) entity.List {
	t.Helper()
	for _, l := range lists {
		if l.Name == name {
			return l
		}
	}
	t.Fatalf("list %q not found in %+v", name, lists)
	return entity.List{}
}
