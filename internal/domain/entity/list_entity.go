package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Every new account is seeded with one "Daily" list.
const (
	DailyListName     = "Daily"
	dailyListImageURL = "https://images.unsplash.com/photo-1506485338023-6ce5f36692df?q=80&w=2070&auto=format&fit=crop&ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D"
	dailyListBody     = "Daily tasks!"
)

// Item is a single task. It lives in exactly one of a list's Items or
// CompletedItems collections; its ID is assigned once and survives the move.
type Item struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// List is a named card of tasks owned by one user. The JSON tags double as
// the storage encoding: lists are persisted as a JSONB array on the user row.
type List struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"url"`
	Body           string `json:"body,omitempty"`
	Items          []Item `json:"items"`
	CompletedItems []Item `json:"completedItems"`
}

func newItem(name string, now time.Time) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, fmt.Errorf("item name is required: %w", ErrValidation)
	}
	return Item{ID: uuid.NewString(), Name: name, Date: now}, nil
}

// NewList validates and builds a list with a fresh id. Initial items, if any,
// go into the active collection with a creation timestamp of now.
func NewList(name, imageURL, body string, itemNames []string, now time.Time) (List, error) {
	if strings.TrimSpace(name) == "" {
		return List{}, fmt.Errorf("list name is required: %w", ErrValidation)
	}
	if strings.TrimSpace(imageURL) == "" {
		return List{}, fmt.Errorf("list image url is required: %w", ErrValidation)
	}
	l := List{
		ID:             uuid.NewString(),
		Name:           name,
		ImageURL:       imageURL,
		Body:           body,
		Items:          []Item{},
		CompletedItems: []Item{},
	}
	for _, n := range itemNames {
		it, err := newItem(n, now)
		if err != nil {
			return List{}, err
		}
		l.Items = append(l.Items, it)
	}
	return l, nil
}

// DailyList builds the list every fresh account starts with.
func DailyList() List {
	l, _ := NewList(DailyListName, dailyListImageURL, dailyListBody, nil, time.Time{})
	return l
}

// AddItem appends a new active item with a fresh id and creation timestamp.
func (l *List) AddItem(name string, now time.Time) (Item, error) {
	it, err := newItem(name, now)
	if err != nil {
		return Item{}, err
	}
	l.Items = append(l.Items, it)
	return it, nil
}

// CompleteItem moves the item from active to completed, keeping its id and
// stamping it with the completion instant. The move is all-or-nothing: on any
// error the list is untouched.
func (l *List) CompleteItem(itemID string, now time.Time) error {
	for i, it := range l.Items {
		if it.ID == itemID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			it.Date = now
			l.CompletedItems = append(l.CompletedItems, it)
			return nil
		}
	}
	return fmt.Errorf("active item %s: %w", itemID, ErrNotFound)
}

// DeleteCompletedItem removes the item from the completed collection. Active
// items cannot be deleted, only completed.
func (l *List) DeleteCompletedItem(itemID string) error {
	for i, it := range l.CompletedItems {
		if it.ID == itemID {
			l.CompletedItems = append(l.CompletedItems[:i], l.CompletedItems[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("completed item %s: %w", itemID, ErrNotFound)
}

// ImageRef returns the trailing path segment of the list's image URL. Callers
// get it back as metadata when a list is deleted; the object itself is never
// touched here.
func (l *List) ImageRef() string {
	parts := strings.Split(l.ImageURL, "/")
	return parts[len(parts)-1]
}
