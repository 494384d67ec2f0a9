package render

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-reprgen/pkg/registry"
	"github.com/goliatone/go-reprgen/pkg/resolver"
	"github.com/goliatone/go-reprgen/pkg/style"
)

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithRegistry injects the declaration registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Renderer) {
		r.registry = reg
	}
}

// WithStyles injects the style registry used to resolve style names.
func WithStyles(styles *style.Registry) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithResolver injects a custom attribute resolver.
func WithResolver(res *resolver.Resolver) Option {
	return func(r *Renderer) {
		r.resolver = res
	}
}

// WithLogger sets the logger handed to the default registry and resolver.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
