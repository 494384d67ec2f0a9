package model

import "fmt"

// DescriptorKind tags the variant held by a Descriptor.
type DescriptorKind int

const (
	// KindInvalid is the zero value; a zero Descriptor never validates.
	KindInvalid DescriptorKind = iota
	// KindName includes the attribute with the given name.
	KindName
	// KindLiteral includes a virtual attribute with a caller-chosen key.
	KindLiteral
	// KindValue includes a nameless virtual attribute.
	KindValue
	// KindRemaining expands to every visible attribute not named elsewhere.
	KindRemaining
)

func (k DescriptorKind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindLiteral:
		return "literal"
	case KindValue:
		return "value"
	case KindRemaining:
		return "remaining"
	default:
		return "invalid"
	}
}

// Descriptor is one item of a declaration result. Build it with Name,
// Literal, Value or Remaining.
type Descriptor struct {
	kind  DescriptorKind
	name  string
	key   any
	value any
}

// Name describes the attribute called name on the instance.
func Name(name string) Descriptor {
	return Descriptor{kind: KindName, name: name}
}

// Literal describes a virtual attribute rendered as key=value.
func Literal(key, value any) Descriptor {
	return Descriptor{kind: KindLiteral, key: key, value: value}
}

// Value describes a virtual attribute rendered without a key.
func Value(value any) Descriptor {
	return Descriptor{kind: KindValue, value: value}
}

// Remaining expands, at its position, to all visible attributes that are not
// named explicitly.
func Remaining() Descriptor {
	return Descriptor{kind: KindRemaining}
}

// Kind reports the descriptor variant.
func (d Descriptor) Kind() DescriptorKind { return d.kind }

// AttrName returns the attribute name of a KindName descriptor.
func (d Descriptor) AttrName() string { return d.name }

// Key returns the key of a KindLiteral descriptor.
func (d Descriptor) Key() any { return d.key }

// LiteralValue returns the value of a KindLiteral or KindValue descriptor.
func (d Descriptor) LiteralValue() any { return d.value }

// Validate reports whether the descriptor was built with a constructor and
// carries the data its variant requires.
func (d Descriptor) Validate() error {
	switch d.kind {
	case KindName:
		if d.name == "" {
			return fmt.Errorf("attribute name is empty")
		}
		return nil
	case KindLiteral, KindValue, KindRemaining:
		return nil
	default:
		return fmt.Errorf("descriptor is not initialised")
	}
}

func (d Descriptor) String() string {
	switch d.kind {
	case KindName:
		return fmt.Sprintf("Name(%q)", d.name)
	case KindLiteral:
		return fmt.Sprintf("Literal(%v, %v)", d.key, d.value)
	case KindValue:
		return fmt.Sprintf("Value(%v)", d.value)
	case KindRemaining:
		return "Remaining()"
	default:
		return "Descriptor(invalid)"
	}
}
