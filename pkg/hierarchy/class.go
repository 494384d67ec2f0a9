// Package hierarchy models types as classes with bases, slots and a C3
// method resolution order.
package hierarchy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-reprgen/pkg/model"
)

// ErrInconsistentHierarchy is returned when no C3 linearisation exists for a
// class and its bases.
var ErrInconsistentHierarchy = errors.New("hierarchy: cannot create a consistent method resolution order")

// Slot is an attribute declared directly by a class.
type Slot struct {
	Name    string
	Private bool
}

// Definition is the input for New and Build.
type Definition struct {
	// ID identifies the class uniquely; Name is used when empty.
	ID string
	// Name is the display name.
	Name  string
	Bases []*Class
	Slots []Slot
	// Spec is the class's own declaration, nil when it declares none.
	Spec *model.RenderSpec
	// Payload carries implementation data (the reflect.Type for struct-backed
	// classes). The hierarchy package never inspects it.
	Payload any
}

// Class is an immutable node of a type hierarchy with its precomputed method
// resolution order.
type Class struct {
	id      string
	name    string
	bases   []*Class
	slots   []Slot
	spec    *model.RenderSpec
	payload any
	mro     []*Class
}

// New builds a class whose MRO is the strict C3 linearisation of its bases.
func New(def Definition) (*Class, error) {
	class, err := newClass(def)
	if err != nil {
		return nil, err
	}
	mro, err := linearize(class)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, class.name)
	}
	class.mro = mro
	return class, nil
}

// Build is like New but falls back to a depth-first order that keeps the last
// occurrence of every shared base when C3 has no solution. Go struct embedding
// allows graphs that C3 rejects, so reflected classes use Build.
//
// Build panics when def has no name or a nil base. Reflected definitions
// always carry the type's name and the bases built before them.
func Build(def Definition) *Class {
	class, err := newClass(def)
	if err != nil {
		panic(err)
	}
	mro, err := linearize(class)
	if err != nil {
		mro = depthFirst(class)
	}
	class.mro = mro
	return class
}

func newClass(def Definition) (*Class, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, errors.New("hierarchy: class name is required")
	}
	id := strings.TrimSpace(def.ID)
	if id == "" {
		id = name
	}
	for idx, base := range def.Bases {
		if base == nil {
			return nil, fmt.Errorf("hierarchy: %s base %d is nil", name, idx)
		}
	}
	return &Class{
		id:      id,
		name:    name,
		bases:   append([]*Class(nil), def.Bases...),
		slots:   append([]Slot(nil), def.Slots...),
		spec:    def.Spec,
		payload: def.Payload,
	}, nil
}

// ID returns the unique identifier.
func (c *Class) ID() string { return c.id }

// Name returns the display name.
func (c *Class) Name() string { return c.name }

// Bases returns the direct bases in declaration order.
func (c *Class) Bases() []*Class { return append([]*Class(nil), c.bases...) }

// Slots returns the attributes declared directly by the class.
func (c *Class) Slots() []Slot { return append([]Slot(nil), c.slots...) }

// Spec returns the class's own declaration; it never looks at ancestors.
func (c *Class) Spec() *model.RenderSpec { return c.spec }

// Declared reports whether the class carries its own declaration.
func (c *Class) Declared() bool { return c.spec != nil }

// Payload returns the implementation data supplied at construction.
func (c *Class) Payload() any { return c.payload }

// MRO returns the method resolution order, most derived first.
func (c *Class) MRO() []*Class { return append([]*Class(nil), c.mro...) }

// HasSlot reports whether the class itself declares slot name.
func (c *Class) HasSlot(name string) bool {
	for _, slot := range c.slots {
		if slot.Name == name {
			return true
		}
	}
	return false
}

// IsSubclass reports whether other appears in c's MRO.
func (c *Class) IsSubclass(other *Class) bool {
	for _, entry := range c.mro {
		if entry == other {
			return true
		}
	}
	return false
}

func (c *Class) String() string {
	names := make([]string, 0, len(c.mro))
	for _, entry := range c.mro {
		names = append(names, entry.name)
	}
	return fmt.Sprintf("%s[%s]", c.name, strings.Join(names, " "))
}

// Walk returns the classes of c's MRO. topDown yields ancestors first.
func Walk(c *Class, topDown bool) []*Class {
	if c == nil {
		return nil
	}
	mro := c.MRO()
	if !topDown {
		return mro
	}
	for i, j := 0, len(mro)-1; i < j; i, j = i+1, j-1 {
		mro[i], mro[j] = mro[j], mro[i]
	}
	return mro
}
