// Package render ties the registry, the resolver and the style registry together.
package render

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-reprgen/pkg/mirror"
	"github.com/goliatone/go-reprgen/pkg/model"
	"github.com/goliatone/go-reprgen/pkg/registry"
	"github.com/goliatone/go-reprgen/pkg/resolver"
	"github.com/goliatone/go-reprgen/pkg/style"
)

// Renderer runs the registry → resolver → style pipeline. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
type Renderer struct {
	registry *registry.Registry
	styles   *style.Registry
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.applyDefaults()
	return r
}

func (r *Renderer) applyDefaults() {
	if r.registry == nil {
		r.registry = registry.New(registry.WithLogger(r.logger))
	}
	if r.styles == nil {
		r.styles = style.NewRegistry()
	}
	if r.resolver == nil {
		r.resolver = resolver.New(resolver.WithLogger(r.logger))
	}
}

// Registry returns the declaration registry.
func (r *Renderer) Registry() *registry.Registry { return r.registry }

// Styles returns the style registry.
func (r *Renderer) Styles() *style.Registry { return r.styles }

// Render returns the repr of v using the style its declarations select.
func (r *Renderer) Render(v any) (string, error) {
	return r.RenderStyle(v, model.Style{})
}

// RenderStyle is Render with a style that takes precedence over the declared
// one. The zero Style keeps the declared style.
func (r *Renderer) RenderStyle(v any, s model.Style) (string, error) {
	inst, err := r.registry.Instance(v)
	if err != nil {
		return "", err
	}
	return r.render(inst, s)
}

// RenderInstance renders an already adapted instance, such as a dynamic record.
func (r *Renderer) RenderInstance(inst mirror.Instance) (string, error) {
	return r.render(inst, model.Style{})
}

// Resolve exposes the resolution step for callers that format attributes
// themselves.
func (r *Renderer) Resolve(v any) (resolver.Resolution, error) {
	inst, err := r.registry.Instance(v)
	if err != nil {
		return resolver.Resolution{}, err
	}
	return r.resolver.Resolve(inst)
}

func (r *Renderer) render(inst mirror.Instance, override model.Style) (string, error) {
	resolution, err := r.resolver.Resolve(inst)
	if err != nil {
		return "", err
	}

	selected := resolution.Style
	if !override.IsInherit() {
		selected = override
	}
	fn, err := r.styles.Resolve(selected)
	if err != nil {
		return "", fmt.Errorf("render: %s: %w", resolution.TypeName, err)
	}
	return r.format(fn, resolution)
}

// format calls the style function. A *style.Failure panic becomes an error;
// anything else keeps unwinding.
func (r *Renderer) format(fn model.StyleFunc, resolution resolver.Resolution) (out string, err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		failure, ok := recovered.(*style.Failure)
		if !ok {
			panic(recovered)
		}
		r.logger.Warn("repr style failed",
			zap.String("type", resolution.TypeName),
			zap.String("style", failure.Style),
			zap.Error(failure.Err),
		)
		err = fmt.Errorf("render: %s: %w", resolution.TypeName, failure)
	}()

	return fn(resolution.Instance, resolution.TypeName, resolution.Attributes), nil
}

// IsStyleFailure reports whether err came from a failing style function.
func IsStyleFailure(err error) bool {
	var failure *style.Failure
	return errors.As(err, &failure)
}
