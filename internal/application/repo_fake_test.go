package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/todocards/api/internal/domain/entity"
)

// fakeUserRepo is an in-memory UserRepository with the same versioning
// semantics as the Postgres implementation. conflictsToInject makes the next
// N SaveLists calls lose the optimistic check, for exercising the retry loop.
type fakeUserRepo struct {
	mu                sync.Mutex
	users             map[string]*entity.User
	nextID            int
	conflictsToInject int
	saveCalls         int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	b, _ := json.Marshal(u.Lists)
	cp.Lists = nil
	_ = json.Unmarshal(b, &cp.Lists)
	if cp.Lists == nil {
		cp.Lists = []entity.List{}
	}
	return &cp
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email && u.Email != "" {
			return entity.ErrConflict
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.Version = 1
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = copyUser(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) GetByProvider(_ context.Context, provider, providerID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		var id string
		switch provider {
		case "google":
			id = u.GoogleID
		case "facebook":
			id = u.FacebookID
		case "github":
			id = u.GitHubID
		case "twitter":
			id = u.TwitterID
		}
		if id != "" && id == providerID {
			return copyUser(u), nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return entity.ErrNotFound
	}
	stored.Email = u.Email
	stored.Name = u.Name
	stored.AvatarURL = u.AvatarURL
	stored.GoogleID = u.GoogleID
	stored.FacebookID = u.FacebookID
	stored.GitHubID = u.GitHubID
	stored.TwitterID = u.TwitterID
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SaveLists(_ context.Context, userID string, lists []entity.List, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	u, ok := r.users[userID]
	if !ok {
		return entity.ErrNotFound
	}
	if r.conflictsToInject > 0 {
		r.conflictsToInject--
		return entity.ErrConflict
	}
	if u.Version != expectedVersion {
		return entity.ErrConflict
	}
	cp := copyUser(u)
	cp.Lists = lists
	cp = copyUser(cp)
	cp.Version = u.Version + 1
	cp.UpdatedAt = time.Now()
	r.users[userID] = cp
	return nil
}
