package entity

import (
	"fmt"
	"strings"
	"time"
)

// User is the aggregate root: the whole List/Item subtree hangs off one user
// and is loaded and persisted as a unit. Version backs the optimistic
// concurrency check on that persist.
//
// Password is a bcrypt hash and is empty for accounts created through a
// federated provider, in which case exactly one provider id is set instead.
type User struct {
	ID         string
	Email      string
	Password   string
	Name       string
	AvatarURL  string
	GoogleID   string
	FacebookID string
	GitHubID   string
	TwitterID  string
	Lists      []List
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListRef addresses one of the user's lists, by id when set, otherwise by
// name. Id-based lookup is the primary path; name lookup exists for the
// item endpoints the frontend drives by list title.
type ListRef struct {
	ID   string
	Name string
}

// ListByID returns the user's list with the given id, or nil.
func (u *User) ListByID(id string) *List {
	for i := range u.Lists {
		if u.Lists[i].ID == id {
			return &u.Lists[i]
		}
	}
	return nil
}

// ListByName returns the last list in storage order whose name matches, or
// nil. List names are not unique; when ambiguous the tie-break is
// deliberately last-match-wins, so callers that care should use ids.
func (u *User) ListByName(name string) *List {
	for i := len(u.Lists) - 1; i >= 0; i-- {
		if u.Lists[i].Name == name {
			return &u.Lists[i]
		}
	}
	return nil
}

// ResolveList resolves a ListRef against this user's lists.
func (u *User) ResolveList(ref ListRef) *List {
	if ref.ID != "" {
		return u.ListByID(ref.ID)
	}
	return u.ListByName(ref.Name)
}

// AddList appends the list to the end of the user's sequence.
func (u *User) AddList(l List) {
	u.Lists = append(u.Lists, l)
}

// UpdateList renames/redecorates the matched list in place, leaving its item
// collections untouched. Name and body are required; an empty imageURL keeps
// the current image.
func (u *User) UpdateList(id, name, body, imageURL string) (*List, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("list name and body are required: %w", ErrValidation)
	}
	l := u.ListByID(id)
	if l == nil {
		return nil, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	l.Name = name
	l.Body = body
	if imageURL != "" {
		l.ImageURL = imageURL
	}
	return l, nil
}

// RemoveList deletes exactly one list and returns the trailing path segment
// of its image URL as caller-visible metadata.
func (u *User) RemoveList(id string) (string, error) {
	for i := range u.Lists {
		if u.Lists[i].ID == id {
			ref := u.Lists[i].ImageRef()
			u.Lists = append(u.Lists[:i], u.Lists[i+1:]...)
			return ref, nil
		}
	}
	return "", fmt.Errorf("list %s: %w", id, ErrNotFound)
}
