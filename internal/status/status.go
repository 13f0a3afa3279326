// Package status maps error codes to HTTP status codes.
//
// The table mirrors the built-in descriptor set; anything not explicitly
// registered resolves to the default 500. That fallback is deliberate and
// not an error condition: an unmapped code still yields a well-formed
// response, just with degraded status precision.
package status

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/Harshit978/ErrorHandler/internal/errdef"
)

// DefaultStatus is returned for any code without an explicit mapping,
// including ERR-000.
const DefaultStatus = http.StatusInternalServerError

// Registration errors reported synchronously by Register.
var (
	ErrBlankCode     = errors.New("status: code must not be blank")
	ErrInvalidStatus = errors.New("status: status must be a valid HTTP status code")
)

// Resolver holds the code→status table. Safe for concurrent use; the last
// registration for a code wins.
type Resolver struct {
	mu    sync.RWMutex
	table map[string]int
}

// NewResolver returns a Resolver seeded with the built-in mappings.
// ERR-004 maps to 422; the historical omission of that entry produced
// misleading 500s for rejected entities.
func NewResolver() *Resolver {
	return &Resolver{
		table: map[string]int{
			errdef.CodeValidation:       http.StatusBadRequest,
			errdef.CodeNotFound:         http.StatusNotFound,
			errdef.CodePermissionDenied: http.StatusForbidden,
			errdef.CodeUnprocessable:    http.StatusUnprocessableEntity,
		},
	}
}

// Register maps code to status, inserting or replacing the entry.
func (r *Resolver) Register(code string, status int) error {
	if strings.TrimSpace(code) == "" {
		return ErrBlankCode
	}
	if status < 100 || status > 599 {
		return ErrInvalidStatus
	}
	r.mu.Lock()
	r.table[code] = status
	r.mu.Unlock()
	return nil
}

// Resolve returns the status registered for code, or DefaultStatus when no
// mapping exists.
func (r *Resolver) Resolve(code string) int {
	r.mu.RLock()
	s, ok := r.table[code]
	r.mu.RUnlock()
	if !ok {
		return DefaultStatus
	}
	return s
}
