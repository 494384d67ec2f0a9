// Package mirror lists the attributes of an instance in hierarchy order.
package mirror

import (
	"strings"

	"github.com/goliatone/go-reprgen/pkg/hierarchy"
)

// Instance is a value seen through its type hierarchy. Struct values are
// adapted by the registry package; dynamic records by the record package.
type Instance interface {
	// Class returns the most derived class.
	Class() *hierarchy.Class
	// Value returns the underlying object, handed to style functions.
	Value() any
	// As returns the instance viewed as one of its classes; declarations
	// owned by that class receive this value.
	As(class *hierarchy.Class) any
	// Lookup reads an attribute by name.
	Lookup(name string) (any, error)
	// Bound reports whether slot, declared by class, currently holds a value.
	Bound(class *hierarchy.Class, slot string) bool
	// Dict returns the dynamic attribute names in insertion order.
	Dict() []string
}

// IsPrivate reports whether an attribute name is private, i.e. starts with an
// underscore.
func IsPrivate(name string) bool {
	return strings.HasPrefix(name, "_")
}

// Mirror lists the classes and attributes of an instance.
type Mirror struct {
	SkipPrivate bool
	TopDown     bool
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithSkipPrivate toggles private-name filtering.
func WithSkipPrivate(skip bool) Option {
	return func(m *Mirror) {
		m.SkipPrivate = skip
	}
}

// WithTopDown selects ancestor-first ordering.
func WithTopDown(topDown bool) Option {
	return func(m *Mirror) {
		m.TopDown = topDown
	}
}

// New returns a mirror that hides private names and walks top down.
func New(opts ...Option) Mirror {
	m := Mirror{SkipPrivate: true, TopDown: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// ReflectClasses returns the instance's classes in the configured order.
func (m Mirror) ReflectClasses(inst Instance) []*hierarchy.Class {
	if inst == nil {
		return nil
	}
	return hierarchy.Walk(inst.Class(), m.TopDown)
}

// ReflectAttributes returns the names currently bound on inst: every class's
// slots in hierarchy order, skipping slots without a value, followed by the
// dynamic attributes. A name is reported once, at its first position.
func (m Mirror) ReflectAttributes(inst Instance) []string {
	if inst == nil {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	appendName := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, class := range m.ReflectClasses(inst) {
		for _, slot := range class.Slots() {
			if m.SkipPrivate && (slot.Private || IsPrivate(slot.Name)) {
				continue
			}
			if !inst.Bound(class, slot.Name) {
				continue
			}
			appendName(slot.Name)
		}
	}

	for _, name := range inst.Dict() {
		if m.SkipPrivate && IsPrivate(name) {
			continue
		}
		appendName(name)
	}
	return out
}
