package reprgen

import (
	"sync"

	"github.com/goliatone/go-reprgen/pkg/model"
	"github.com/goliatone/go-reprgen/pkg/registry"
	"github.com/goliatone/go-reprgen/pkg/render"
)

// Result is the value a declaration returns.
type Result = model.Result

// Descriptor is one item of a Result.
type Descriptor = model.Descriptor

// Attribute is a resolved attribute handed to style functions.
type Attribute = model.Attribute

// StyleFunc formats a type name and its attributes.
type StyleFunc = model.StyleFunc

// Option configures a declaration.
type Option = model.Option

// Tuple is the loose form of a literal attribute accepted by DeclareFunc.
type Tuple = model.Tuple

// Rest is the ellipsis sentinel accepted by DeclareFunc.
var Rest = model.Rest

// Result constructors.
var (
	All       = model.All
	Names     = model.Names
	Attrs     = model.Attrs
	Name      = model.Name
	Literal   = model.Literal
	Value     = model.Value
	Remaining = model.Remaining
)

// Declaration options.
var (
	WithStyleName   = model.WithStyleName
	WithStyleFunc   = model.WithStyleFunc
	WithSkipPrivate = model.WithSkipPrivate
	WithOverride    = model.WithOverride
	WithTopDown     = model.WithTopDown
	WithBottomUp    = model.WithBottomUp
	WithTypeName    = model.WithTypeName
)

var (
	defaultOnce     sync.Once
	defaultRenderer *render.Renderer
)

// Default returns the process-wide renderer used by the package-level
// functions.
func Default() *render.Renderer {
	defaultOnce.Do(func() {
		defaultRenderer = render.New()
	})
	return defaultRenderer
}

// Declare attaches a declaration to T in the default registry.
func Declare[T any](fn func(T) Result, opts ...Option) error {
	return registry.Declare(Default().Registry(), fn, opts...)
}

// DeclareE attaches a declaration that can fail.
func DeclareE[T any](fn func(T) (Result, error), opts ...Option) error {
	return registry.DeclareE(Default().Registry(), fn, opts...)
}

// MustDeclare panics when Declare fails. Useful for init-time wiring.
func MustDeclare[T any](fn func(T) Result, opts ...Option) {
	if err := Declare(fn, opts...); err != nil {
		panic(err)
	}
}

// DeclareFunc attaches an untyped declaration to the type of sample. See
// registry.DeclareFunc for the accepted signatures.
func DeclareFunc(sample, fn any, opts ...Option) error {
	return registry.DeclareFunc(Default().Registry(), sample, fn, opts...)
}

// Render returns the repr of v.
func Render(v any) (string, error) {
	return Default().Render(v)
}

// Repr returns the repr of v and panics on error. It is meant for String
// methods, where fmt reports the panic in place of the value.
func Repr(v any) string {
	out, err := Render(v)
	if err != nil {
		panic(err)
	}
	return out
}
