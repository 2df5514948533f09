package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/todocards/api/internal/domain/entity"
	"github.com/todocards/api/internal/domain/repository"
)

// saveAttempts bounds the retry loop around the load-mutate-persist cycle
// when the optimistic version check loses a race.
const saveAttempts = 3

// TodoService is the single entry point for every list/item operation. The
// credential has already been resolved to a user id by the auth middleware;
// here each call loads that user's whole list subtree, applies exactly one
// domain mutation, and persists the subtree back as a unit.
type TodoService struct {
	Repo   repository.UserRepository
	Logger *logrus.Logger
}

func NewTodoService(repo repository.UserRepository, logger *logrus.Logger) *TodoService {
	return &TodoService{Repo: repo, Logger: logger}
}

// ListsResult is what every list/item operation hands back: the owner's full
// list set as durably stored, plus the default-list hint the frontend uses
// to decide which card to focus. RemovedImage is set only by DeleteList.
type ListsResult struct {
	Lists           []entity.List
	DefaultListName string
	RemovedImage    string
}

type CreateListInput struct {
	Name     string
	ImageURL string
	Body     string
	Items    []string
}

type UpdateListInput struct {
	ListID   string
	Name     string
	Body     string
	ImageURL string
}

// ListAll returns the user's lists in storage order. An empty set is valid.
func (s *TodoService) ListAll(ctx context.Context, userID string) (ListsResult, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return ListsResult{}, err
	}
	return ListsResult{Lists: u.Lists, DefaultListName: entity.DailyListName}, nil
}

func (s *TodoService) CreateList(ctx context.Context, userID string, in CreateListInput) (ListsResult, error) {
	return s.mutate(ctx, userID, func(u *entity.User) (string, string, error) {
		l, err := entity.NewList(in.Name, in.ImageURL, in.Body, in.Items, time.Now())
		if err != nil {
			return "", "", err
		}
		u.AddList(l)
		return l.Name, "", nil
	})
}

func (s *TodoService) UpdateList(ctx context.Context, userID string, in UpdateListInput) (ListsResult, error) {
	return s.mutate(ctx, userID, func(u *entity.User) (string, string, error) {
		l, err := u.UpdateList(in.ListID, in.Name, in.Body, in.ImageURL)
		if err != nil {
			return "", "", err
		}
		return l.Name, "", nil
	})
}

func (s *TodoService) DeleteList(ctx context.Context, userID, listID string) (ListsResult, error) {
	return s.mutate(ctx, userID, func(u *entity.User) (string, string, error) {
		ref, err := u.RemoveList(listID)
		if err != nil {
			return "", "", err
		}
		return entity.DailyListName, ref, nil
	})
}

func (s *TodoService) AddItem(ctx context.Context, userID string, ref entity.ListRef, itemName string) (ListsResult, error) {
	return s.mutate(ctx, userID, func(u *entity.User) (string, string, error) {
		l := u.ResolveList(ref)
		if l == nil {
			return "", "", entity.ErrNotFound
		}
		if _, err := l.AddItem(itemName, time.Now()); err != nil {
			return "", "", err
		}
		return l.Name, "", nil
	})
}

func (s *TodoService) CompleteItem(ctx context.Context, userID string, ref entity.ListRef, itemID string) (ListsResult, error) {
	return s.mutate(ctx, userID, func(u *entity.User) (string, string, error) {
		l := u.ResolveList(ref)
		if l == nil {
			return "", "", entity.ErrNotFound
		}
		if err := l.CompleteItem(itemID, time.Now()); err != nil {
			return "", "", err
		}
		return l.Name, "", nil
	})
}

func (s *TodoService) DeleteCompletedItem(ctx context.Context, userID string, ref entity.ListRef, itemID string) (ListsResult, error) {
	return s.mutate(ctx, userID, func(u *entity.User) (string, string, error) {
		l := u.ResolveList(ref)
		if l == nil {
			return "", "", entity.ErrNotFound
		}
		if err := l.DeleteCompletedItem(itemID); err != nil {
			return "", "", err
		}
		return l.Name, "", nil
	})
}

// mutate runs one load-mutate-persist cycle, retrying the whole cycle when
// the compare-and-swap save reports a lost race. The returned lists are
// re-read after the save so the response reflects what was durably stored.
// fn returns the default-list hint and optional removed-image metadata.
func (s *TodoService) mutate(ctx context.Context, userID string, fn func(u *entity.User) (string, string, error)) (ListsResult, error) {
	var lastErr error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		u, err := s.Repo.GetByID(ctx, userID)
		if err != nil {
			return ListsResult{}, err
		}
		defaultName, removed, err := fn(u)
		if err != nil {
			return ListsResult{}, err
		}
		if err := s.Repo.SaveLists(ctx, userID, u.Lists, u.Version); err != nil {
			if errors.Is(err, entity.ErrConflict) {
				lastErr = err
				if s.Logger != nil {
					s.Logger.WithFields(logrus.Fields{"user_id": userID, "attempt": attempt}).
						Warn("concurrent write detected, retrying")
				}
				continue
			}
			return ListsResult{}, err
		}
		fresh, err := s.Repo.GetByID(ctx, userID)
		if err != nil {
			return ListsResult{}, err
		}
		return ListsResult{Lists: fresh.Lists, DefaultListName: defaultName, RemovedImage: removed}, nil
	}
	return ListsResult{}, lastErr
}
