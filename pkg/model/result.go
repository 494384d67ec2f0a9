package model

import (
	"fmt"
	"reflect"
)

type ellipsis struct{}

func (ellipsis) String() string { return "..." }

// Rest is the ellipsis sentinel accepted by Parse. Returned on its own it means
// "all attributes"; inside a sequence it behaves like Remaining().
var Rest = ellipsis{}

// Tuple is the loosely typed form of a literal attribute: one element is a
// nameless value, two elements are key and value.
type Tuple []any

// Result is the value a declaration function returns: either the unset
// sentinel (All) or an ordered descriptor sequence.
type Result struct {
	all   bool
	items []Descriptor
}

// All returns the unset sentinel: include every visible attribute.
func All() Result {
	return Result{all: true}
}

// Attrs returns a result holding the given descriptors in order.
func Attrs(items ...Descriptor) Result {
	return Result{items: append([]Descriptor(nil), items...)}
}

// Names is shorthand for Attrs with one Name descriptor per argument.
func Names(names ...string) Result {
	items := make([]Descriptor, 0, len(names))
	for _, name := range names {
		items = append(items, Name(name))
	}
	return Result{items: items}
}

// IsAll reports whether r is the unset sentinel.
func (r Result) IsAll() bool { return r.all }

// Items returns a copy of the descriptor sequence. For All it returns a single
// Remaining descriptor.
func (r Result) Items() []Descriptor {
	if r.all {
		return []Descriptor{Remaining()}
	}
	return append([]Descriptor(nil), r.items...)
}

// Validate checks every descriptor in the sequence.
func (r Result) Validate() error {
	if r.all {
		return nil
	}
	for idx, item := range r.items {
		if err := item.Validate(); err != nil {
			return &ConfigurationError{Detail: fmt.Sprintf("item %d: %v", idx, err)}
		}
	}
	return nil
}

// Parse converts a loosely typed declaration return value into a Result.
//
// Accepted: nil or Rest (all attributes), Result, Descriptor, []Descriptor,
// []string, Tuple and []any. Sequence elements may be names, descriptors,
// Rest, or tuples of one or two elements. A bare string is rejected because it
// is ambiguous with an attribute name.
func Parse(v any) (Result, error) {
	switch value := v.(type) {
	case nil:
		return All(), nil
	case ellipsis:
		return All(), nil
	case Result:
		if err := value.Validate(); err != nil {
			return Result{}, err
		}
		return value, nil
	case *Result:
		if value == nil {
			return All(), nil
		}
		return Parse(*value)
	case string:
		return Result{}, &ConfigurationError{Detail: "a bare string return is not allowed; return a sequence of names"}
	case Descriptor:
		return Parse(Attrs(value))
	case []Descriptor:
		return Parse(Attrs(value...))
	case []string:
		return Names(value...), nil
	case Tuple:
		return parseSequence([]any(value))
	case []any:
		return parseSequence(value)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return parseSequence(items)
	}
	return Result{}, &ConfigurationError{Detail: fmt.Sprintf("return value is not a sequence or nil: %#v", v)}
}

func parseSequence(items []any) (Result, error) {
	out := make([]Descriptor, 0, len(items))
	for _, item := range items {
		descriptor, err := parseItem(item)
		if err != nil {
			return Result{}, err
		}
		out = append(out, descriptor)
	}
	return Result{items: out}, nil
}

func parseItem(item any) (Descriptor, error) {
	switch value := item.(type) {
	case string:
		if value == "" {
			return Descriptor{}, &ConfigurationError{Detail: "empty attribute name"}
		}
		return Name(value), nil
	case ellipsis:
		return Remaining(), nil
	case Descriptor:
		if err := value.Validate(); err != nil {
			return Descriptor{}, &ConfigurationError{Detail: err.Error()}
		}
		return value, nil
	case Tuple:
		return parseTuple([]any(value))
	case []any:
		return parseTuple(value)
	}
	return Descriptor{}, &ConfigurationError{Detail: fmt.Sprintf("attribute is not a string, tuple, or ellipsis: %#v", item)}
}

func parseTuple(tuple []any) (Descriptor, error) {
	switch len(tuple) {
	case 0:
		return Descriptor{}, &ConfigurationError{Detail: "empty attribute: ()"}
	case 1:
		return Value(tuple[0]), nil
	case 2:
		return Literal(tuple[0], tuple[1]), nil
	default:
		return Descriptor{}, &ConfigurationError{Detail: fmt.Sprintf("attribute has too many items: %v", tuple)}
	}
}
