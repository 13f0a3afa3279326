// Package handlers provides the demo item API that ships with the error
// boundary. It exists to exercise the full normalization pipeline end to
// end: handlers here never write error bodies themselves, they surface
// typed failures with c.Error (or let panics escape) and rely on the
// boundary to classify, format, and respond.
//
// Conventions:
//   - Failures are fault values; the detail string names the field or
//     resource involved and feeds the descriptor template.
//   - Success responses are written directly with c.JSON / c.Status.
package handlers

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Harshit978/ErrorHandler/internal/fault"
)

// maxNameLen bounds item names; longer names are well-formed but rejected.
const maxNameLen = 120

// Item is a stored demo resource.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// CreateItemRequest is the JSON payload for creating an item.
type CreateItemRequest struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// Handlers holds the in-memory item store backing the demo API.
type Handlers struct {
	mu    sync.RWMutex
	items map[string]Item
}

// New returns an empty item store.
func New() *Handlers {
	return &Handlers{items: make(map[string]Item)}
}

// CreateItem handles POST /items.
//
// Failure modes surfaced to the boundary:
//   - unparseable body or blank name → fault.Invalid (ERR-001, 400)
//   - name exceeding maxNameLen      → fault.Unprocessable (ERR-004, 422)
func (h *Handlers) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(&fault.Invalid{Detail: "body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		_ = c.Error(&fault.Invalid{Detail: "name"})
		return
	}
	if len(req.Name) > maxNameLen {
		_ = c.Error(&fault.Unprocessable{Detail: "name longer than 120 characters"})
		return
	}
	if req.Owner == "" {
		req.Owner = "anonymous"
	}

	it := Item{ID: uuid.NewString(), Name: req.Name, Owner: req.Owner}
	h.mu.Lock()
	h.items[it.ID] = it
	h.mu.Unlock()

	c.JSON(http.StatusCreated, it)
}

// GetItem handles GET /items/:id. A missing item surfaces fault.NotFound
// (ERR-002, 404).
func (h *Handlers) GetItem(c *gin.Context) {
	id := c.Param("id")

	h.mu.RLock()
	it, ok := h.items[id]
	h.mu.RUnlock()
	if !ok {
		_ = c.Error(&fault.NotFound{Detail: "item " + id})
		return
	}
	c.JSON(http.StatusOK, it)
}

// DeleteItem handles DELETE /items/:id. Only the owner (X-User-ID header)
// may delete; anyone else surfaces fault.Denied (ERR-003, 403).
func (h *Handlers) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	it, ok := h.items[id]
	if !ok {
		h.mu.Unlock()
		_ = c.Error(&fault.NotFound{Detail: "item " + id})
		return
	}
	if c.GetHeader("X-User-ID") != it.Owner {
		h.mu.Unlock()
		_ = c.Error(&fault.Denied{Detail: "item " + id})
		return
	}
	delete(h.items, id)
	h.mu.Unlock()

	c.Status(http.StatusNoContent)
}
