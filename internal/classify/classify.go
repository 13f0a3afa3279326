// Package classify resolves failure values to error descriptors.
//
// Resolution order:
//  1. A failure implementing fault.Coder declares its own descriptor and
//     bypasses the table entirely.
//  2. The failure's concrete runtime type is looked up in the mapping table.
//  3. Anything else falls back to the unknown descriptor (ERR-000).
//
// Lookup is by exact runtime type on purpose: a type that wraps or embeds a
// registered failure type does not inherit its mapping. Wrapped errors are
// not unwrapped either: the boundary hands over the exact value that
// surfaced, and that value's own identity decides. This keeps classification
// predictable at the cost of requiring explicit registrations.
package classify

import (
	"errors"
	"reflect"
	"sync"

	"github.com/Harshit978/ErrorHandler/internal/errdef"
	"github.com/Harshit978/ErrorHandler/internal/fault"
)

// Registration errors reported synchronously by Register.
var (
	ErrNilPrototype  = errors.New("classify: prototype failure must not be nil")
	ErrNilDescriptor = errors.New("classify: descriptor must carry a code")
)

// Classifier maps failure runtime types to descriptors. It is safe for
// concurrent use; registrations are atomic per type and effective for the
// next classification, last write wins.
type Classifier struct {
	reg *errdef.Registry

	mu    sync.RWMutex
	table map[reflect.Type]errdef.Descriptor
}

// New returns a Classifier backed by reg, pre-seeded with the default
// mappings for the fault package's typed failures:
//
//	*fault.Invalid       → ERR-001
//	*fault.NotFound      → ERR-002
//	*fault.Denied        → ERR-003
//	*fault.Unprocessable → ERR-004
func New(reg *errdef.Registry) *Classifier {
	c := &Classifier{
		reg:   reg,
		table: make(map[reflect.Type]errdef.Descriptor),
	}
	seed := []struct {
		proto error
		code  string
	}{
		{&fault.Invalid{}, errdef.CodeValidation},
		{&fault.NotFound{}, errdef.CodeNotFound},
		{&fault.Denied{}, errdef.CodePermissionDenied},
		{&fault.Unprocessable{}, errdef.CodeUnprocessable},
	}
	for _, s := range seed {
		if d, ok := reg.Get(s.code); ok {
			c.table[reflect.TypeOf(s.proto)] = d
		}
	}
	return c
}

// Register maps the concrete type of prototype to desc, inserting or
// replacing the entry. The prototype's value is irrelevant; only its type is
// recorded, so a zero value such as &fault.NotFound{} is a fine prototype.
func (c *Classifier) Register(prototype error, desc errdef.Descriptor) error {
	if prototype == nil {
		return ErrNilPrototype
	}
	if desc.Code == "" {
		return ErrNilDescriptor
	}
	t := reflect.TypeOf(prototype)
	c.mu.Lock()
	c.table[t] = desc
	c.mu.Unlock()
	return nil
}

// Classify resolves err to a descriptor. A nil err resolves to the unknown
// descriptor; the boundary never passes one, but callers in tests may.
func (c *Classifier) Classify(err error) errdef.Descriptor {
	if err == nil {
		return c.reg.Unknown()
	}
	// Self-declared descriptors win. Deliberately a direct assertion on the
	// surfaced value, not an errors.As walk.
	if coder, ok := err.(fault.Coder); ok {
		if d := coder.Descriptor(); !d.Zero() {
			return d
		}
	}
	c.mu.RLock()
	d, ok := c.table[reflect.TypeOf(err)]
	c.mu.RUnlock()
	if ok {
		return d
	}
	return c.reg.Unknown()
}
