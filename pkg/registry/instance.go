package registry

import (
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/mirror"
	"github.com/goliatone/go-reprgen/pkg/model"
)

// instance adapts a Go value to mirror.Instance.
type instance struct {
	class  *hierarchy.Class
	layout *layout
	// root is an addressable value of the class type.
	root  reflect.Value
	value any
}

var _ mirror.Instance = (*instance)(nil)

// newInstance expects v to be a non-nil pointer or a value; Registry.Instance
// rejects nil pointers before calling it.
func newInstance(class *hierarchy.Class, v any) *instance {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && rv.Type().Elem().Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	var root reflect.Value
	if rv.Kind() == reflect.Pointer {
		root = rv.Elem()
	} else {
		root = reflect.New(layoutOf(class).typ).Elem()
		if rv.Type().AssignableTo(root.Type()) {
			root.Set(rv)
		}
	}

	return &instance{
		class:  class,
		layout: layoutOf(class),
		root:   root,
		value:  v,
	}
}

func (i *instance) Class() *hierarchy.Class { return i.class }

func (i *instance) Value() any { return i.value }

// As returns a pointer to the part of the value that class describes. A class
// reached through a nil embedded pointer yields a nil pointer of that type.
func (i *instance) As(class *hierarchy.Class) any {
	path, ok := i.layout.paths[class]
	if !ok {
		return i.value
	}
	target, reachable := locate(i.root, path)
	if !reachable {
		return reflect.Zero(reflect.PointerTo(layoutOf(class).typ)).Interface()
	}
	ptr := target.Addr()
	if !ptr.CanInterface() {
		return i.value
	}
	return ptr.Interface()
}

// Lookup reads name from, in order: a slot with that display name, a field
// with that Go name, a dynamic attribute table, and an exported method without
// arguments.
func (i *instance) Lookup(name string) (any, error) {
	if value, found, err := i.lookupField(name, func(f field) bool { return !f.hidden && f.name == name }); found || err != nil {
		return value, err
	}
	if value, found, err := i.lookupField(name, func(f field) bool { return f.goName == name }); found || err != nil {
		return value, err
	}
	if value, ok := i.lookupDict(name); ok {
		return value, nil
	}
	if value, found, err := i.lookupMethod(name); found || err != nil {
		return value, err
	}
	return nil, &model.AttributeError{Type: i.class.Name(), Name: name}
}

func (i *instance) lookupField(name string, match func(field) bool) (any, bool, error) {
	for _, class := range i.class.MRO() {
		l := layoutOf(class)
		if l == nil {
			continue
		}
		for _, f := range l.fields {
			if !match(f) {
				continue
			}
			target, reachable := locate(i.root, i.layout.paths[class])
			if !reachable {
				return nil, true, &model.AttributeError{
					Type: i.class.Name(),
					Name: name,
					Err:  fmt.Errorf("embedded %s is nil", class.Name()),
				}
			}
			return export(target.Field(f.index)), true, nil
		}
	}
	return nil, false, nil
}

func (i *instance) lookupDict(name string) (any, bool) {
	for _, d := range i.dicts() {
		if value, ok := d.get(name); ok {
			return value, true
		}
	}
	return nil, false
}

func (i *instance) lookupMethod(name string) (any, bool, error) {
	candidates := []string{name}
	if r, size := utf8.DecodeRuneInString(name); r != utf8.RuneError && unicode.IsLower(r) {
		candidates = append(candidates, string(unicode.ToUpper(r))+name[size:])
	}

	receiver := i.root.Addr()
	for _, candidate := range candidates {
		method := receiver.MethodByName(candidate)
		if !method.IsValid() {
			continue
		}
		mt := method.Type()
		if mt.NumIn() != 0 {
			continue
		}
		switch {
		case mt.NumOut() == 1:
			return export(method.Call(nil)[0]), true, nil
		case mt.NumOut() == 2 && mt.Out(1) == errorType:
			out := method.Call(nil)
			if errValue := out[1]; !errValue.IsNil() {
				return nil, true, &model.AttributeError{Type: i.class.Name(), Name: name, Err: errValue.Interface().(error)}
			}
			return export(out[0]), true, nil
		}
	}
	return nil, false, nil
}

func (i *instance) Bound(class *hierarchy.Class, slot string) bool {
	l := layoutOf(class)
	if l == nil {
		return false
	}
	path, ok := i.layout.paths[class]
	if !ok {
		return false
	}
	target, reachable := locate(i.root, path)
	if !reachable {
		return false
	}
	for _, f := range l.fields {
		if !f.hidden && f.name == slot {
			return f.bound(target.Field(f.index))
		}
	}
	return false
}

// Dict lists dynamic attribute names, ancestors' tables first. Inline maps
// contribute their keys sorted.
func (i *instance) Dict() []string {
	var out []string
	for _, d := range i.dicts() {
		out = append(out, d.keys()...)
	}
	return out
}

type table struct {
	value reflect.Value
	kind  dictKind
}

func (i *instance) dicts() []table {
	var out []table
	for _, class := range hierarchy.Walk(i.class, true) {
		l := layoutOf(class)
		if l == nil || len(l.dicts) == 0 {
			continue
		}
		target, reachable := locate(i.root, i.layout.paths[class])
		if !reachable {
			continue
		}
		for _, d := range l.dicts {
			out = append(out, table{value: target.Field(d.index), kind: d.kind})
		}
	}
	return out
}

func (t table) dict() *mirror.Dict {
	switch t.kind {
	case dictTable:
		if !t.value.CanAddr() || !t.value.Addr().CanInterface() {
			return nil
		}
		return t.value.Addr().Interface().(*mirror.Dict)
	case dictTablePtr:
		if t.value.IsNil() || !t.value.CanInterface() {
			return nil
		}
		return t.value.Interface().(*mirror.Dict)
	}
	return nil
}

func (t table) get(name string) (any, bool) {
	if t.kind == dictMap {
		if t.value.IsNil() {
			return nil, false
		}
		value := t.value.MapIndex(reflect.ValueOf(name).Convert(t.value.Type().Key()))
		if !value.IsValid() {
			return nil, false
		}
		return export(value), true
	}
	return t.dict().Get(name)
}

func (t table) keys() []string {
	if t.kind == dictMap {
		if t.value.IsNil() {
			return nil
		}
		keys := make([]string, 0, t.value.Len())
		iter := t.value.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		return keys
	}
	return t.dict().Keys()
}
