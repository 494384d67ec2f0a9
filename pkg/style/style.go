package style

import (
	"strings"

	"github.com/goliatone/go-reprgen/pkg/model"
)

// Call renders attributes in constructor-call layout:
//
//	Klass(foo=1, bar=2)
func Call(_ any, typeName string, attrs []model.Attribute) string {
	formatted := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		formatted = append(formatted, FormatAttribute(attr))
	}
	return typeName + "(" + strings.Join(formatted, ", ") + ")"
}

// Angle renders attributes in the angle-bracket layout used for opaque
// objects:
//
//	<Klass foo=1 bar=2>
func Angle(_ any, typeName string, attrs []model.Attribute) string {
	parts := make([]string, 0, len(attrs)+1)
	parts = append(parts, typeName)
	for _, attr := range attrs {
		parts = append(parts, FormatAttribute(attr))
	}
	return "<" + strings.Join(parts, " ") + ">"
}

// FormatAttribute renders one attribute. A string key is used verbatim, any
// other key through Repr; unnamed attributes render as the value's repr only.
func FormatAttribute(attr model.Attribute) string {
	if !attr.Named {
		return Repr(attr.Value)
	}
	return FormatKey(attr.Key) + "=" + Repr(attr.Value)
}

// FormatKey renders an attribute key.
func FormatKey(key any) string {
	if text, ok := key.(string); ok {
		return text
	}
	return Repr(key)
}
