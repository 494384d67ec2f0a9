package model

// Attribute is a resolved (key, value) pair, or a bare value when Named is
// false. An ordered slice of attributes is the input of a style function.
type Attribute struct {
	Key   any
	Value any
	Named bool
}

// NamedAttr builds a keyed attribute.
func NamedAttr(key, value any) Attribute {
	return Attribute{Key: key, Value: value, Named: true}
}

// UnnamedAttr builds an attribute rendered without a key.
func UnnamedAttr(value any) Attribute {
	return Attribute{Value: value}
}

// StyleFunc renders the final repr from the instance, the display type name
// and the resolved attributes. Its result is used verbatim.
type StyleFunc func(instance any, typeName string, attrs []Attribute) string

// Style selects a StyleFunc either by registry name or directly. The zero
// value means "inherit": the next declaring type decides.
type Style struct {
	Name string
	Func StyleFunc
}

// Built-in style names. The aliases mirror the literal layouts.
const (
	StyleNameCall  = "call"
	StyleNameAngle = "angle"
	StyleNameHTML  = "html"
)

var (
	// StyleCall renders Type(k=v, ...).
	StyleCall = Style{Name: StyleNameCall}
	// StyleAngle renders <Type k=v ...>.
	StyleAngle = Style{Name: StyleNameAngle}
	// StyleHTML renders sanitised markup.
	StyleHTML = Style{Name: StyleNameHTML}
)

// StyleNamed selects a registered style.
func StyleNamed(name string) Style {
	return Style{Name: name}
}

// StyleOf wraps a custom style function.
func StyleOf(fn StyleFunc) Style {
	return Style{Func: fn}
}

// IsInherit reports whether the style defers to other declarations.
func (s Style) IsInherit() bool {
	return s.Name == "" && s.Func == nil
}
