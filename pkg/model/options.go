package model

import "strings"

// Options configure one declaration.
type Options struct {
	// Style picks the layout. The zero Style inherits from other declarations
	// and finally falls back to the call style.
	Style Style
	// SkipPrivate hides attributes whose name starts with "_" when expanding
	// the wildcard. Explicitly named attributes are always shown.
	SkipPrivate bool
	// Override drops every ancestor declaration when this declaration is the
	// most derived one.
	Override bool
	// TopDown walks ancestors before descendants; false walks the most derived
	// type first.
	TopDown bool
	// TypeName replaces the display name of the declaring type when it is the
	// most derived type of the rendered instance.
	TypeName string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		SkipPrivate: true,
		TopDown:     true,
	}
}

// Option mutates declaration options.
type Option func(*Options)

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	out := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&out)
	}
	return out
}

// WithStyle sets the style.
func WithStyle(style Style) Option {
	return func(o *Options) {
		o.Style = style
	}
}

// WithStyleName selects a registered style by name ("call", "()", "angle",
// "<>", "html", or a custom registration).
func WithStyleName(name string) Option {
	return func(o *Options) {
		o.Style = StyleNamed(strings.TrimSpace(name))
	}
}

// WithStyleFunc installs a custom style function.
func WithStyleFunc(fn StyleFunc) Option {
	return func(o *Options) {
		o.Style = StyleOf(fn)
	}
}

// WithSkipPrivate toggles private-attribute filtering for wildcard expansion.
func WithSkipPrivate(skip bool) Option {
	return func(o *Options) {
		o.SkipPrivate = skip
	}
}

// WithOverride makes the declaration replace its ancestors' declarations.
func WithOverride(override bool) Option {
	return func(o *Options) {
		o.Override = override
	}
}

// WithTopDown selects ancestor-first traversal.
func WithTopDown(topDown bool) Option {
	return func(o *Options) {
		o.TopDown = topDown
	}
}

// WithBottomUp selects most-derived-first traversal.
func WithBottomUp() Option {
	return WithTopDown(false)
}

// WithTypeName overrides the displayed type name.
func WithTypeName(name string) Option {
	return func(o *Options) {
		o.TypeName = strings.TrimSpace(name)
	}
}
