package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/mirror"
	"github.com/goliatone/go-reprgen/pkg/model"
)

// Option customises the resolver.
type Option func(*Resolver)

// WithLogger injects a logger for resolution traces (debug level).
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefaultStyle replaces the style used when no declaration picks one.
func WithDefaultStyle(style model.Style) Option {
	return func(r *Resolver) {
		if !style.IsInherit() {
			r.defaultStyle = style
		}
	}
}

// Resolver walks an instance's type hierarchy and collects the attributes
// every declaring type asks for.
type Resolver struct {
	logger       *zap.Logger
	defaultStyle model.Style
}

// New constructs a Resolver. The default style is call.
func New(options ...Option) *Resolver {
	r := &Resolver{
		logger:       zap.NewNop(),
		defaultStyle: model.StyleCall,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Resolution is the resolver's output and the style formatter's input.
type Resolution struct {
	// Instance is the rendered object, passed to style functions.
	Instance any
	// TypeName is the display name of the most derived type.
	TypeName string
	// Attributes holds the resolved attributes in render order.
	Attributes []model.Attribute
	// Style is the style chosen for the instance.
	Style model.Style
}

type level struct {
	class *hierarchy.Class
	spec  *model.RenderSpec
	items []model.Descriptor
}

// Resolve computes the ordered attributes and the style for inst.
//
// The governing declaration is the first one found walking from the most
// derived type; its Override and TopDown options shape the walk. Every
// declaring type contributes its attributes in walk order. A wildcard expands
// to the visible attributes that are neither named explicitly anywhere in the
// walk nor already emitted. The style comes from the most derived declaration
// that sets one.
func (r *Resolver) Resolve(inst mirror.Instance) (Resolution, error) {
	if inst == nil || inst.Class() == nil {
		return Resolution{}, fmt.Errorf("resolver: instance is required")
	}
	root := inst.Class()

	governing := governingClass(root)
	if governing == nil {
		return Resolution{}, fmt.Errorf("%w: %s", model.ErrNotDeclared, root.Name())
	}
	options := governing.Spec().Options

	classes := hierarchy.Walk(root, options.TopDown)
	if options.Override {
		classes = []*hierarchy.Class{governing}
	}

	levels, err := r.collect(inst, classes)
	if err != nil {
		return Resolution{}, err
	}

	attrs, err := r.expand(inst, levels, options.TopDown)
	if err != nil {
		return Resolution{}, err
	}

	resolution := Resolution{
		Instance:   inst.Value(),
		TypeName:   displayName(root),
		Attributes: attrs,
		Style:      r.pickStyle(root, levels),
	}
	r.logger.Debug("repr resolved",
		zap.String("type", resolution.TypeName),
		zap.String("governing", governing.Name()),
		zap.Int("levels", len(levels)),
		zap.Int("attributes", len(attrs)),
		zap.Bool("override", options.Override),
		zap.Bool("top_down", options.TopDown),
	)
	return resolution, nil
}

func governingClass(root *hierarchy.Class) *hierarchy.Class {
	for _, class := range root.MRO() {
		if class.Declared() {
			return class
		}
	}
	return nil
}

func displayName(root *hierarchy.Class) string {
	if spec := root.Spec(); spec != nil && spec.Options.TypeName != "" {
		return spec.Options.TypeName
	}
	return root.Name()
}

// collect calls every declaration in walk order. Declarations run before any
// expansion so wildcards can exclude names declared later in the walk.
func (r *Resolver) collect(inst mirror.Instance, classes []*hierarchy.Class) ([]level, error) {
	levels := make([]level, 0, len(classes))
	for _, class := range classes {
		spec := class.Spec()
		if spec == nil {
			continue
		}
		if spec.Declare == nil {
			return nil, &model.ConfigurationError{Type: class.Name(), Detail: "declaration function is nil"}
		}

		result, err := spec.Declare(inst.As(class))
		if err != nil {
			return nil, err
		}
		if err := result.Validate(); err != nil {
			return nil, withType(err, class.Name())
		}

		r.logger.Debug("repr declaration",
			zap.String("class", class.Name()),
			zap.Bool("all", result.IsAll()),
		)
		levels = append(levels, level{class: class, spec: spec, items: result.Items()})
	}
	return levels, nil
}

func (r *Resolver) expand(inst mirror.Instance, levels []level, topDown bool) ([]model.Attribute, error) {
	explicit := make(map[string]struct{})
	for _, lvl := range levels {
		for _, item := range lvl.items {
			if item.Kind() == model.KindName {
				explicit[item.AttrName()] = struct{}{}
			}
		}
	}

	var attrs []model.Attribute
	emitted := make(map[string]struct{})

	for _, lvl := range levels {
		for _, item := range lvl.items {
			switch item.Kind() {
			case model.KindName:
				name := item.AttrName()
				value, err := inst.Lookup(name)
				if err != nil {
					return nil, err
				}
				attrs = append(attrs, model.NamedAttr(name, value))
				emitted[name] = struct{}{}

			case model.KindLiteral:
				attrs = append(attrs, model.NamedAttr(item.Key(), item.LiteralValue()))

			case model.KindValue:
				attrs = append(attrs, model.UnnamedAttr(item.LiteralValue()))

			case model.KindRemaining:
				m := mirror.Mirror{SkipPrivate: lvl.spec.Options.SkipPrivate, TopDown: topDown}
				for _, name := range m.ReflectAttributes(inst) {
					if _, named := explicit[name]; named {
						continue
					}
					if _, done := emitted[name]; done {
						continue
					}
					value, err := inst.Lookup(name)
					if err != nil {
						return nil, err
					}
					attrs = append(attrs, model.NamedAttr(name, value))
					emitted[name] = struct{}{}
				}

			default:
				return nil, &model.ConfigurationError{Type: lvl.class.Name(), Detail: fmt.Sprintf("unsupported descriptor %s", item)}
			}
		}
	}
	return attrs, nil
}

// pickStyle returns the style of the most derived declaration that sets one,
// whatever the walk direction.
func (r *Resolver) pickStyle(root *hierarchy.Class, levels []level) model.Style {
	position := make(map[*hierarchy.Class]int)
	for idx, class := range root.MRO() {
		position[class] = idx
	}

	var chosen *level
	for idx := range levels {
		lvl := &levels[idx]
		if lvl.spec.Options.Style.IsInherit() {
			continue
		}
		if chosen == nil || position[lvl.class] < position[chosen.class] {
			chosen = lvl
		}
	}
	if chosen == nil {
		return r.defaultStyle
	}
	return chosen.spec.Options.Style
}

func withType(err error, typeName string) error {
	if cfgErr, ok := err.(*model.ConfigurationError); ok && cfgErr.Type == "" {
		return &model.ConfigurationError{Type: typeName, Detail: cfgErr.Detail}
	}
	return err
}
