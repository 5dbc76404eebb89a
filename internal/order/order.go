// Package order defines the order domain model shared by the gateway,
// the store and the user interfaces.
package order

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of an order. The progression is forward
// only: PENDING → CONFIRMED → PROCESSING → SHIPPED → DELIVERED, with
// CANCELLED reachable from the first three states.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists all statuses in progression order, CANCELLED last.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s Status) String() string { return string(s) }

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Next returns the next status in the forward progression. The second
// return is false for DELIVERED and CANCELLED, which have no successor.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusConfirmed, true
	case StatusConfirmed:
		return StatusProcessing, true
	case StatusProcessing:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// Cancellable reports whether an order in this status may still be
// cancelled. SHIPPED and DELIVERED orders may not.
func (s Status) Cancellable() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status is absorbing.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal
// status transition: one forward step, or cancellation while still
// cancellable. Illegal moves are rejected by the server, never
// silently corrected.
func (s Status) CanTransitionTo(next Status) bool {
	if next == StatusCancelled {
		return s.Cancellable()
	}
	fwd, ok := s.Next()
	return ok && fwd == next
}

// ParseStatus converts user input to a Status, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return s, nil
}

// OrderLine is a single product line on an order. Subtotal is computed
// server-side as quantity × unit price.
type OrderLine struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId,omitempty"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is a customer purchase record with a lifecycle status and one
// or more lines. Identity, numbering, totals and timestamps are owned
// by the remote service; the client never recomputes them.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	CustomerID      string      `json:"customerId"`
	CustomerEmail   string      `json:"customerEmail"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	Status          Status      `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	CreatedAt       Timestamp   `json:"createdAt"`
	Items           []OrderLine `json:"items"`
}

// Page is one page of the remote order collection, mapped from the
// server's paging envelope.
type Page struct {
	Orders        []Order
	TotalPages    int
	TotalElements int
	PageNumber    int
}

// DraftLine is one requested product line on a new order.
type DraftLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Draft is the payload for creating an order. The server computes the
// id, order number, subtotals, total and creation time.
type Draft struct {
	CustomerID      string      `json:"customerId"`
	CustomerEmail   string      `json:"customerEmail"`
	ShippingAddress string      `json:"shippingAddress"`
	Items           []DraftLine `json:"items"`
}

// Validate checks the draft against the constraints the server is known
// to enforce, so obviously broken drafts never leave the client.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.CustomerID) == "" {
		return errors.New("customer id is required")
	}
	if strings.TrimSpace(d.CustomerEmail) == "" {
		return errors.New("customer email is required")
	}
	if !strings.Contains(d.CustomerEmail, "@") {
		return errors.New("customer email must be a valid address")
	}
	if strings.TrimSpace(d.ShippingAddress) == "" {
		return errors.New("shipping address is required")
	}
	if len(d.Items) == 0 {
		return errors.New("order must have at least one item")
	}
	for i, line := range d.Items {
		if strings.TrimSpace(line.ProductID) == "" {
			return fmt.Errorf("item %d: product id is required", i+1)
		}
		if strings.TrimSpace(line.ProductName) == "" {
			return fmt.Errorf("item %d: product name is required", i+1)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i+1)
		}
		if line.UnitPrice <= 0 {
			return fmt.Errorf("item %d: unit price must be positive", i+1)
		}
	}
	return nil
}
