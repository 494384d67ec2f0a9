package registry

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/mirror"
)

const tagName = "repr"

var (
	dictType    = reflect.TypeOf(mirror.Dict{})
	dictPtrType = reflect.TypeOf(&mirror.Dict{})
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// layout is the payload of a struct-backed class: where its slots, bases and
// dynamic attribute tables live inside a value of typ.
type layout struct {
	typ    reflect.Type
	fields []field
	bases  []base
	dicts  []dict
	// paths locates every class of the MRO from a value of typ.
	paths map[*hierarchy.Class][]step
}

type field struct {
	index    int
	name     string
	goName   string
	omitZero bool
	private  bool
	hidden   bool
}

type base struct {
	index   int
	pointer bool
	class   *hierarchy.Class
}

type dictKind int

const (
	dictTable dictKind = iota
	dictTablePtr
	dictMap
)

type dict struct {
	index int
	kind  dictKind
}

type step struct {
	index   int
	pointer bool
}

type tagOptions struct {
	name     string
	skip     bool
	omitZero bool
	inline   bool
}

func parseTag(sf reflect.StructField) tagOptions {
	raw, ok := sf.Tag.Lookup(tagName)
	if !ok {
		return tagOptions{}
	}
	if raw == "-" {
		return tagOptions{skip: true}
	}
	parts := strings.Split(raw, ",")
	opts := tagOptions{name: strings.TrimSpace(parts[0])}
	for _, part := range parts[1:] {
		switch strings.TrimSpace(part) {
		case "omitzero":
			opts.omitZero = true
		case "inline":
			opts.inline = true
		}
	}
	return opts
}

func layoutOf(class *hierarchy.Class) *layout {
	if class == nil {
		return nil
	}
	l, _ := class.Payload().(*layout)
	return l
}

// classKey strips pointers so *T and T share one class.
func classKey(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func typeID(t reflect.Type) string {
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// buildClass reflects t into a class. Callers hold the write lock.
func (r *Registry) buildClass(t reflect.Type, building map[reflect.Type]bool) *hierarchy.Class {
	if class, ok := r.classes[t]; ok {
		return class
	}
	building[t] = true
	defer delete(building, t)

	l := &layout{typ: t, paths: make(map[*hierarchy.Class][]step)}
	var (
		bases []*hierarchy.Class
		slots []hierarchy.Slot
	)

	if t.Kind() == reflect.Struct {
		for idx := 0; idx < t.NumField(); idx++ {
			sf := t.Field(idx)
			opts := parseTag(sf)
			if opts.skip {
				// Hidden from reflection, still readable by Go name.
				if !sf.Anonymous {
					l.fields = append(l.fields, field{index: idx, goName: sf.Name, hidden: true})
				}
				continue
			}

			switch {
			case sf.Type == dictType:
				l.dicts = append(l.dicts, dict{index: idx, kind: dictTable})
				continue
			case sf.Type == dictPtrType:
				l.dicts = append(l.dicts, dict{index: idx, kind: dictTablePtr})
				continue
			case opts.inline && sf.Type.Kind() == reflect.Map && sf.Type.Key().Kind() == reflect.String:
				l.dicts = append(l.dicts, dict{index: idx, kind: dictMap})
				continue
			}

			if sf.Anonymous {
				embedded := classKey(sf.Type)
				if embedded.Kind() == reflect.Struct && !building[embedded] {
					baseClass := r.buildClass(embedded, building)
					bases = append(bases, baseClass)
					l.bases = append(l.bases, base{
						index:   idx,
						pointer: sf.Type.Kind() == reflect.Pointer,
						class:   baseClass,
					})
					continue
				}
			}

			name := opts.name
			explicit := name != ""
			if !explicit {
				name = sf.Name
			}
			f := field{
				index:    idx,
				name:     name,
				goName:   sf.Name,
				omitZero: opts.omitZero,
				private:  mirror.IsPrivate(name) || (!sf.IsExported() && !explicit),
			}
			l.fields = append(l.fields, f)
			slots = append(slots, hierarchy.Slot{Name: f.name, Private: f.private})
		}
	}

	class := hierarchy.Build(hierarchy.Definition{
		ID:      typeID(t),
		Name:    typeName(t),
		Bases:   bases,
		Slots:   slots,
		Spec:    r.specs[t],
		Payload: l,
	})

	l.paths[class] = nil
	for _, b := range l.bases {
		head := step{index: b.index, pointer: b.pointer}
		inner := layoutOf(b.class)
		if _, seen := l.paths[b.class]; !seen {
			l.paths[b.class] = []step{head}
		}
		for ancestor, tail := range inner.paths {
			if _, seen := l.paths[ancestor]; seen {
				continue
			}
			l.paths[ancestor] = append([]step{head}, tail...)
		}
	}

	r.classes[t] = class
	return class
}

// locate follows path from root. It reports false when a nil embedded pointer
// is on the way.
func locate(root reflect.Value, path []step) (reflect.Value, bool) {
	v := root
	for _, s := range path {
		v = v.Field(s.index)
		if s.pointer {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = embedded(v)
	}
	return v, true
}

// embedded drops the read-only flag reflect sets on values reached through an
// unexported embedded field. Bases are part of the value's public shape even
// when their type is unexported. v must be addressable.
func embedded(v reflect.Value) reflect.Value {
	if v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func (f field) bound(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return false
		}
	}
	if f.omitZero && v.IsZero() {
		return false
	}
	return true
}

// export returns v as an interface when reflection allows it and the
// reflect.Value itself otherwise (unexported fields).
func export(v reflect.Value) any {
	if v.CanInterface() {
		return v.Interface()
	}
	return v
}
