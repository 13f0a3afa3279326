// Package fault defines the failure values the classification layer works
// with. It centralizes the typed failures surfaced by handlers so that they
// can be consistently mapped to error descriptors at the request boundary.
//
// Two flavors exist:
//   - plain typed failures (Invalid, NotFound, Denied, Unprocessable) that
//     are classified by their concrete runtime type;
//   - rich failures built with New that carry their own Descriptor and
//     bypass the type table entirely (see the Coder capability).
package fault

import (
	"github.com/Harshit978/ErrorHandler/internal/errdef"
)

// Coder is the capability a failure may implement to declare its own
// descriptor. When present it takes precedence over any type-based mapping.
type Coder interface {
	Descriptor() errdef.Descriptor
}

// Invalid reports a request value that failed validation.
type Invalid struct {
	// Detail names the offending field or value.
	Detail string
}

func (e *Invalid) Error() string { return e.Detail }

// NotFound reports a missing resource.
type NotFound struct {
	// Detail names the resource that was looked up.
	Detail string
}

func (e *NotFound) Error() string { return e.Detail }

// Denied reports an authorization failure.
type Denied struct {
	// Detail names the protected resource.
	Detail string
}

func (e *Denied) Error() string { return e.Detail }

// Unprocessable reports a well-formed request that cannot be acted on.
type Unprocessable struct {
	// Detail describes the entity that was rejected.
	Detail string
}

func (e *Unprocessable) Error() string { return e.Detail }

// coded is a failure constructed around a specific descriptor.
type coded struct {
	desc   errdef.Descriptor
	detail string
}

// New returns a failure that carries desc as its own classification.
// The boundary will use desc directly instead of consulting the type table,
// and detail feeds the descriptor's template slot.
func New(desc errdef.Descriptor, detail string) error {
	return &coded{desc: desc, detail: detail}
}

func (e *coded) Error() string { return e.detail }

// Descriptor implements the Coder capability.
func (e *coded) Descriptor() errdef.Descriptor { return e.desc }
