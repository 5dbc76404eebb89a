// Package store holds the client-side order state: the last fetched
// page, a selected order, pagination metadata and the loading/error
// pair. All mutation goes through the five operations, each of which
// issues exactly one gateway call and applies its outcome atomically.
package store

import (
	"context"
	"sync"

	"github.com/Nikhila-inturi/cartify/internal/gateway"
	"github.com/Nikhila-inturi/cartify/internal/order"
)

// Gateway is the remote order API surface the store drives.
type Gateway interface {
	ListOrders(ctx context.Context, page, size int) (*order.Page, error)
	GetOrder(ctx context.Context, id string) (*order.Order, error)
	CreateOrder(ctx context.Context, draft order.Draft) (*order.Order, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error)
	CancelOrder(ctx context.Context, id string) error
}

// State is an observable snapshot of the store. Items is a copy, safe
// to hold across renders.
type State struct {
	Items         []order.Order
	Selected      *order.Order
	TotalPages    int
	TotalElements int
	CurrentPage   int
	Loading       bool
	LastError     string
}

// Store is the single mutable state object for one session. Operations
// may run concurrently; each applies its reducer under the lock when
// its request resolves, so overlapping writes are last-write-wins and
// no partial update is ever observable.
type Store struct {
	gw Gateway

	mu            sync.Mutex
	items         []order.Order
	selected      *order.Order
	totalPages    int
	totalElements int
	currentPage   int
	loading       bool
	lastError     string
}

// New creates an empty store over the given gateway.
func New(gw Gateway) *Store {
	return &Store{gw: gw}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]order.Order, len(s.items))
	copy(items, s.items)

	var selected *order.Order
	if s.selected != nil {
		clone := *s.selected
		selected = &clone
	}

	return State{
		Items:         items,
		Selected:      selected,
		TotalPages:    s.totalPages,
		TotalElements: s.totalElements,
		CurrentPage:   s.currentPage,
		Loading:       s.loading,
		LastError:     s.lastError,
	}
}

// Fetch loads one page of the collection. On failure the previous page
// stays intact and only the error message changes.
func (s *Store) Fetch(ctx context.Context, page, size int) error {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	result, err := s.gw.ListOrders(ctx, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = gateway.Message(err)
		return err
	}

	s.items = result.Orders
	s.totalPages = result.TotalPages
	s.totalElements = result.TotalElements
	s.currentPage = result.PageNumber
	return nil
}

// FetchByID loads a single order into the selected slot.
func (s *Store) FetchByID(ctx context.Context, id string) error {
	result, err := s.gw.GetOrder(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = gateway.Message(err)
		return err
	}
	s.selected = result
	return nil
}

// Create submits a draft; the created order is prepended to the page
// and the element count grows by one.
func (s *Store) Create(ctx context.Context, draft order.Draft) error {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()

	created, err := s.gw.CreateOrder(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastError = gateway.Message(err)
		return err
	}

	s.items = append([]order.Order{*created}, s.items...)
	s.totalElements++
	return nil
}

// UpdateStatus requests a transition and, on success, replaces the
// matching item (and the selected order, when it is the same one) with
// the server's updated record.
func (s *Store) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	updated, err := s.gw.UpdateStatus(ctx, id, status)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = gateway.Message(err)
		return err
	}

	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = *updated
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		s.selected = updated
	}
	return nil
}

// Cancel cancels an order. Success flips only the status of the
// matching item to CANCELLED, in place; list membership and every
// other field are untouched, as is the selected order.
func (s *Store) Cancel(ctx context.Context, id string) error {
	err := s.gw.CancelOrder(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = gateway.Message(err)
		return err
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = order.StatusCancelled
			break
		}
	}
	return nil
}

// ClearError resets the last error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// ClearSelected drops the selected order.
func (s *Store) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}
