package specfile

import (
	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/record"
	"github.com/goliatone/go-reprgen/pkg/style"
)

// Instance is a named record declared by a document.
type Instance struct {
	Name   string
	Source string
	Record *record.Record
}

// Document holds the classes, instances and styles declared by one or more
// files. Names are unique across the whole document.
type Document struct {
	styles    *style.Registry
	classes   map[string]*hierarchy.Class
	order     []string
	instances map[string]Instance
	instOrder []string
}

func newDocument(styles *style.Registry) *Document {
	return &Document{
		styles:    styles,
		classes:   make(map[string]*hierarchy.Class),
		instances: make(map[string]Instance),
	}
}

// Styles returns the style registry holding the built-in styles and the
// document's templates.
func (d *Document) Styles() *style.Registry {
	if d == nil {
		return nil
	}
	return d.styles
}

// Class returns a declared class by name.
func (d *Document) Class(name string) (*hierarchy.Class, bool) {
	if d == nil {
		return nil, false
	}
	class, ok := d.classes[name]
	return class, ok
}

// Classes returns the classes in declaration order.
func (d *Document) Classes() []*hierarchy.Class {
	if d == nil {
		return nil
	}
	out := make([]*hierarchy.Class, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.classes[name])
	}
	return out
}

// Instance returns a declared instance by name.
func (d *Document) Instance(name string) (Instance, bool) {
	if d == nil {
		return Instance{}, false
	}
	inst, ok := d.instances[name]
	return inst, ok
}

// Instances returns the instances in declaration order.
func (d *Document) Instances() []Instance {
	if d == nil {
		return nil
	}
	out := make([]Instance, 0, len(d.instOrder))
	for _, name := range d.instOrder {
		out = append(out, d.instances[name])
	}
	return out
}

// Empty reports whether the document declares nothing.
func (d *Document) Empty() bool {
	return d == nil || (len(d.order) == 0 && len(d.instOrder) == 0)
}
