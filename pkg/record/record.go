// Package record provides dynamic instances for classes that exist only at
// runtime, such as those declared in a declaration document. A Record keeps
// its attributes in insertion order; names declared as slots by any class in
// its hierarchy count as slots, every other name lands in the dynamic table.
package record

import (
	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/mirror"
	"github.com/goliatone/go-reprgen/pkg/model"
)

// Define builds a dynamic class. Slot names starting with "_" are private.
func Define(name string, bases []*hierarchy.Class, slots []string, spec *model.RenderSpec) (*hierarchy.Class, error) {
	defs := make([]hierarchy.Slot, 0, len(slots))
	for _, slot := range slots {
		defs = append(defs, hierarchy.Slot{Name: slot, Private: mirror.IsPrivate(slot)})
	}
	return hierarchy.New(hierarchy.Definition{
		Name:  name,
		Bases: bases,
		Slots: defs,
		Spec:  spec,
	})
}

// Record is a dynamic instance of a hierarchy.Class.
type Record struct {
	class *hierarchy.Class
	attrs mirror.Dict
}

var _ mirror.Instance = (*Record)(nil)

// New creates an empty record of class.
func New(class *hierarchy.Class) *Record {
	return &Record{class: class}
}

// Set binds an attribute and returns the record for chaining.
func (r *Record) Set(name string, value any) *Record {
	r.attrs.Set(name, value)
	return r
}

// Unset removes an attribute.
func (r *Record) Unset(name string) {
	r.attrs.Delete(name)
}

// Get returns an attribute value.
func (r *Record) Get(name string) (any, bool) {
	return r.attrs.Get(name)
}

// Class implements mirror.Instance.
func (r *Record) Class() *hierarchy.Class { return r.class }

// Value implements mirror.Instance.
func (r *Record) Value() any { return r }

// As implements mirror.Instance. A record has a single identity, so every
// class sees the record itself.
func (r *Record) As(*hierarchy.Class) any { return r }

// Lookup implements mirror.Instance.
func (r *Record) Lookup(name string) (any, error) {
	if value, ok := r.attrs.Get(name); ok {
		return value, nil
	}
	return nil, &model.AttributeError{Type: r.typeName(), Name: name}
}

// Bound implements mirror.Instance.
func (r *Record) Bound(class *hierarchy.Class, slot string) bool {
	if class == nil || !class.HasSlot(slot) {
		return false
	}
	return r.attrs.Has(slot)
}

// Dict implements mirror.Instance.
func (r *Record) Dict() []string {
	var out []string
	for _, name := range r.attrs.Keys() {
		if r.isSlot(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (r *Record) isSlot(name string) bool {
	if r.class == nil {
		return false
	}
	for _, class := range r.class.MRO() {
		if class.HasSlot(name) {
			return true
		}
	}
	return false
}

func (r *Record) typeName() string {
	if r.class == nil {
		return "record"
	}
	return r.class.Name()
}
