package order

import (
	"slices"
	"sync"

	"github.com/iliamunaev/doorstep/internal/model"
)

// Status is the lifecycle state of a placed order.
type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Delivered Status = "delivered"
	Cancelled Status = "cancelled"
)

// Entry is a placed order in the history.
type Entry struct {
	model.Confirmation
	Status Status `json:"status"`
}

// History keeps the orders placed during the process lifetime.
type History struct {
	mu      sync.RWMutex
	entries []Entry
	byID    map[string]int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{byID: make(map[string]int)}
}

// Record stores a confirmation as a confirmed order.
func (h *History) Record(c model.Confirmation) Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := Entry{Confirmation: c, Status: Confirmed}
	if i, ok := h.byID[c.OrderID]; ok {
		h.entries[i] = e
		return e
	}
	h.byID[c.OrderID] = len(h.entries)
	h.entries = append(h.entries, e)
	return e
}

// SetStatus updates the status of an order. It reports false for unknown ids.
func (h *History) SetStatus(orderID string, st Status) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i, ok := h.byID[orderID]
	if !ok {
		return false
	}
	h.entries[i].Status = st
	return true
}

// Get returns the order with orderID.
func (h *History) Get(orderID string) (Entry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i, ok := h.byID[orderID]
	if !ok {
		return Entry{}, false
	}
	return h.entries[i], true
}

// List returns orders with status st, newest first. An empty status lists all.
func (h *History) List(st Status) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, 0, len(h.entries))
	for _, e := range slices.Backward(h.entries) {
		if st == "" || e.Status == st {
			out = append(out, e)
		}
	}
	return out
}
