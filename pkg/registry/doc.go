// Package registry maps Go types to their repr declarations and adapts
// values to mirror.Instance.
//
// Types are described by reflection. Embedded struct fields (by value or by
// pointer) become bases, in field order; the remaining fields become slots.
// The `repr` struct tag controls how a field takes part:
//
//	Name  string            `repr:"name"`           // display name
//	Token string            `repr:"-"`              // hidden, still readable as Token
//	Count int               `repr:"count,omitzero"` // zero counts as unbound
//	Meta  map[string]string `repr:",inline"`        // dynamic attributes, sorted keys
//	Extra mirror.Dict                                // dynamic attributes, insertion order
//
// Names starting with "_" and unexported fields without a tag name are
// private. Lookup falls back to exported zero-argument methods, so a
// declaration may name a computed attribute such as "area".
//
// Declarations are registered per type with Declare, DeclareE or the
// reflective DeclareFunc, which checks the function's signature up front.
// Class graphs are built lazily and cached until the next registration.
package registry
