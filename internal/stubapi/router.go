package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Nikhila-inturi/cartify/internal/order"
)

// RouterOptions configure the HTTP surface of the stub.
type RouterOptions struct {
	// Metrics enables the prometheus middleware and /metrics endpoint.
	Metrics bool
	// MetricsNamespace overrides the metric name prefix.
	MetricsNamespace string
}

// Router mounts the orders API. The shape matches the production
// service: a Spring-style paging envelope and {"message": ...} error
// bodies.
func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)

	if opts.Metrics {
		m := newMetrics(opts.MetricsNamespace)
		r.Use(m.middleware)
		r.Handle("/metrics", m.handler())
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/health", s.handleHealth)
		r.Get("/number/{orderNumber}", s.handleGetByNumber)
		r.Get("/customer/{customerID}", s.handleListByCustomer)
		r.Get("/{id}", s.handleGet)
		r.Patch("/{id}/status", s.handleUpdateStatus)
		r.Delete("/{id}", s.handleCancel)
	})

	return r
}

// pageEnvelope mirrors the upstream paging wrapper.
type pageEnvelope struct {
	Content       []order.Order `json:"content"`
	TotalPages    int           `json:"totalPages"`
	TotalElements int           `json:"totalElements"`
	Number        int           `json:"number"`
}

func envelope(p *order.Page) pageEnvelope {
	return pageEnvelope{
		Content:       p.Orders,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Number:        p.PageNumber,
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	respondJSON(w, http.StatusOK, envelope(s.listOrders(page, size, "")))
}

func (s *Server) handleListByCustomer(w http.ResponseWriter, r *http.Request) {
	page, size := pagination(r)
	customerID := chi.URLParam(r, "customerID")
	respondJSON(w, http.StatusOK, envelope(s.listOrders(page, size, customerID)))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	o, err := s.getOrder(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (s *Server) handleGetByNumber(w http.ResponseWriter, r *http.Request) {
	o, err := s.getOrderByNumber(chi.URLParam(r, "orderNumber"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft order.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := s.createOrder(draft)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/orders/"+o.ID)
	respondJSON(w, http.StatusCreated, o)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := s.updateStatus(chi.URLParam(r, "id"), normalizeStatusInput(body.Status))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.cancelOrder(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "UP",
		"service": "order-service",
	})
}

func pagination(r *http.Request) (page, size int) {
	page, size = 0, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}
	return page, size
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are gone at this point; nothing useful to do.
		return
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondError(w http.ResponseWriter, err error) {
	var conflict *conflictError
	switch {
	case errors.Is(err, errNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflict):
		respondMessage(w, http.StatusConflict, err.Error())
	default:
		// Anything else the book produces is a rejected draft or a
		// bad status value.
		respondMessage(w, http.StatusBadRequest, err.Error())
	}
}
