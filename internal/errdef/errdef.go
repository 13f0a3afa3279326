// Package errdef defines the stable error descriptors shared by the
// classification and response layers.
//
// A Descriptor pairs a machine-readable code (e.g. "ERR-001") with a
// human-readable message template. Templates carry at most one %s slot;
// when a failure supplies a detail string it is substituted into the slot,
// otherwise the template is emitted verbatim.
//
// Conventions:
//   - Codes are stable and unique; clients branch on them programmatically.
//   - Descriptors are immutable values. Re-registering a code replaces the
//     whole descriptor atomically; existing values held by callers are
//     unaffected.
//   - The built-in set (ERR-000..ERR-004) exists before any application
//     customization and always includes the unknown fallback.
package errdef

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Built-in descriptor codes. ERR-000 is the fallback for failures no one
// registered a mapping for.
const (
	CodeUnknown          = "ERR-000"
	CodeValidation       = "ERR-001"
	CodeNotFound         = "ERR-002"
	CodePermissionDenied = "ERR-003"
	CodeUnprocessable    = "ERR-004"
)

// slot is the single substitution marker recognized in templates.
const slot = "%s"

// ErrBlankCode is returned when a registration supplies an empty or
// whitespace-only code.
var ErrBlankCode = errors.New("errdef: code must not be blank")

// Descriptor is an immutable code/template pair describing one kind of
// error. The zero value is not a valid descriptor; obtain descriptors from
// a Registry.
type Descriptor struct {
	// Code is the stable, machine-readable identifier (e.g. "ERR-002").
	Code string
	// Template is the human-readable message with zero or one %s slot.
	Template string
}

// Zero reports whether d is the zero Descriptor.
func (d Descriptor) Zero() bool { return d.Code == "" && d.Template == "" }

// Format renders the descriptor's message for the given detail string.
//
// When detail is non-empty and the template contains a %s slot, detail is
// substituted into the slot. In every other case the template is returned
// verbatim, so a slot-less template never exposes formatting artifacts.
func (d Descriptor) Format(detail string) string {
	if detail != "" && strings.Contains(d.Template, slot) {
		return fmt.Sprintf(d.Template, detail)
	}
	return d.Template
}

// Registry holds descriptors by code. It is safe for concurrent use:
// reads never observe a partially written entry, and the last registration
// for a code wins.
type Registry struct {
	mu     sync.RWMutex
	byCode map[string]Descriptor
}

// NewRegistry returns a Registry pre-seeded with the built-in descriptors.
func NewRegistry() *Registry {
	return &Registry{
		byCode: map[string]Descriptor{
			CodeUnknown:          {Code: CodeUnknown, Template: "An unknown error occurred."},
			CodeValidation:       {Code: CodeValidation, Template: "Validation failed for field: %s."},
			CodeNotFound:         {Code: CodeNotFound, Template: "Resource not found: %s."},
			CodePermissionDenied: {Code: CodePermissionDenied, Template: "Permission denied for resource: %s."},
			CodeUnprocessable:    {Code: CodeUnprocessable, Template: "Unprocessable entity: %s."},
		},
	}
}

// Register stores a descriptor under code, replacing any previous template
// registered for it. Blank codes are rejected; templates are stored as-is
// (no syntax validation beyond the single %s slot convention).
func (r *Registry) Register(code, template string) (Descriptor, error) {
	if strings.TrimSpace(code) == "" {
		return Descriptor{}, ErrBlankCode
	}
	d := Descriptor{Code: code, Template: template}
	r.mu.Lock()
	r.byCode[code] = d
	r.mu.Unlock()
	return d, nil
}

// Get returns the descriptor registered under code, if any.
func (r *Registry) Get(code string) (Descriptor, bool) {
	r.mu.RLock()
	d, ok := r.byCode[code]
	r.mu.RUnlock()
	return d, ok
}

// Unknown returns the built-in fallback descriptor. It is always present;
// even if an application re-registers ERR-000 the replacement is returned.
func (r *Registry) Unknown() Descriptor {
	d, _ := r.Get(CodeUnknown)
	return d
}
