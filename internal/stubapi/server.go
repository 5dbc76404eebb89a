// Package stubapi is an in-memory stand-in for the remote orders
// service. It exists so the dashboard and CLI can run and be tested
// without the real backend; it applies the same rules the production
// service owns: draft validation, order numbering, subtotal/total
// computation, transition legality and cancellation limits.
package stubapi

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nikhila-inturi/cartify/internal/order"
)

var (
	errNotFound = errors.New("order not found")
)

// conflictError marks refusals of illegal lifecycle moves.
type conflictError struct {
	msg string
}

func (e *conflictError) Error() string { return e.msg }

// Server holds the in-memory order book, newest order first.
type Server struct {
	log *slog.Logger

	mu     sync.RWMutex
	orders []*order.Order
	byID   map[string]*order.Order

	now func() time.Time
}

// NewServer creates an empty stub service.
func NewServer(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		log:  log,
		byID: make(map[string]*order.Order),
		now:  time.Now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), rand.Intn(1000))
}

// createOrder validates the draft and materializes a PENDING order with
// server-computed identity, numbering, subtotals and total.
func (s *Server) createOrder(draft order.Draft) (*order.Order, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	o := &order.Order{
		ID:              uuid.NewString(),
		OrderNumber:     newOrderNumber(now),
		CustomerID:      draft.CustomerID,
		CustomerEmail:   draft.CustomerEmail,
		ShippingAddress: draft.ShippingAddress,
		Status:          order.StatusPending,
		CreatedAt:       order.Timestamp{Time: now},
	}

	var total float64
	for _, line := range draft.Items {
		subtotal := round2(line.UnitPrice * float64(line.Quantity))
		o.Items = append(o.Items, order.OrderLine{
			ID:          uuid.NewString(),
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    subtotal,
		})
		total += subtotal
	}
	o.TotalAmount = round2(total)

	s.mu.Lock()
	s.orders = append([]*order.Order{o}, s.orders...)
	s.byID[o.ID] = o
	s.mu.Unlock()

	s.log.Info("order created", "order_number", o.OrderNumber, "total", o.TotalAmount)
	return o, nil
}

func (s *Server) getOrder(id string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotFound, id)
	}
	clone := *o
	return &clone, nil
}

func (s *Server) getOrderByNumber(number string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.OrderNumber == number {
			clone := *o
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errNotFound, number)
}

func (s *Server) listOrders(page, size int, customerID string) *order.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.orders
	if customerID != "" {
		matched = nil
		for _, o := range s.orders {
			if o.CustomerID == customerID {
				matched = append(matched, o)
			}
		}
	}

	total := len(matched)
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	content := make([]order.Order, 0, end-start)
	for _, o := range matched[start:end] {
		content = append(content, *o)
	}

	return &order.Page{
		Orders:        content,
		TotalPages:    totalPages,
		TotalElements: total,
		PageNumber:    page,
	}
}

// updateStatus applies a transition after checking it is legal from
// the order's current status.
func (s *Server) updateStatus(id string, next order.Status) (*order.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("unknown order status %q", next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotFound, id)
	}

	previous := o.Status
	if !previous.CanTransitionTo(next) {
		return nil, &conflictError{
			msg: fmt.Sprintf("illegal status transition: %s -> %s", previous, next),
		}
	}

	o.Status = next
	s.log.Info("order status changed",
		"order_number", o.OrderNumber, "from", previous, "to", next)
	clone := *o
	return &clone, nil
}

// cancelOrder refuses orders that are already shipped, delivered or
// cancelled.
func (s *Server) cancelOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", errNotFound, id)
	}

	if !o.Status.Cancellable() {
		return &conflictError{
			msg: fmt.Sprintf("cannot cancel order in status: %s", o.Status),
		}
	}

	o.Status = order.StatusCancelled
	s.log.Info("order cancelled", "order_number", o.OrderNumber)
	return nil
}

// Seed preloads orders for demos. Drafts that fail validation are
// skipped.
func (s *Server) Seed(drafts ...order.Draft) {
	for _, d := range drafts {
		if _, err := s.createOrder(d); err != nil {
			s.log.Warn("seed draft rejected", "error", err)
		}
	}
}

func normalizeStatusInput(raw string) order.Status {
	return order.Status(strings.ToUpper(strings.TrimSpace(raw)))
}
