package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/mirror"
	"github.com/goliatone/go-reprgen/pkg/model"
)

// ErrNilValue is returned when an instance is requested for a nil value.
var ErrNilValue = errors.New("registry: value is nil")

// Option customises a Registry.
type Option func(*Registry)

// WithLogger injects a logger for registration traces.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry maps Go types to their render declarations and caches the class
// graph reflected from each type. *T and T share one entry.
type Registry struct {
	mu      sync.RWMutex
	specs   map[reflect.Type]*model.RenderSpec
	classes map[reflect.Type]*hierarchy.Class
	logger  *zap.Logger
}

// New creates an empty registry.
func New(options ...Option) *Registry {
	r := &Registry{
		specs:   make(map[reflect.Type]*model.RenderSpec),
		classes: make(map[reflect.Type]*hierarchy.Class),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Register attaches spec to t. A type declares at most once.
func (r *Registry) Register(t reflect.Type, spec *model.RenderSpec) error {
	t = classKey(t)
	if t == nil {
		return fmt.Errorf("registry: type is required")
	}
	if spec == nil || spec.Declare == nil {
		return fmt.Errorf("registry: %s: declaration is required", typeName(t))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[t]; exists {
		return fmt.Errorf("registry: %s already declares a repr", typeName(t))
	}
	r.specs[t] = spec
	// Classes embed their spec; rebuild lazily.
	r.classes = make(map[reflect.Type]*hierarchy.Class)

	r.logger.Debug("repr declared",
		zap.String("type", typeID(t)),
		zap.String("style", spec.Options.Style.Name),
		zap.Bool("override", spec.Options.Override),
		zap.Bool("top_down", spec.Options.TopDown),
	)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(t reflect.Type, spec *model.RenderSpec) {
	if err := r.Register(t, spec); err != nil {
		panic(err)
	}
}

// Lookup returns the declaration attached to t itself.
func (r *Registry) Lookup(t reflect.Type) (*model.RenderSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[classKey(t)]
	return spec, ok
}

// Has reports whether t declares a repr.
func (r *Registry) Has(t reflect.Type) bool {
	_, ok := r.Lookup(t)
	return ok
}

// List returns the declaring types sorted by name.
func (r *Registry) List() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.specs))
	for t := range r.specs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Class returns the class reflected from t. Embedded struct fields become its
// bases in declaration order.
func (r *Registry) Class(t reflect.Type) (*hierarchy.Class, error) {
	t = classKey(t)
	if t == nil {
		return nil, fmt.Errorf("registry: type is required")
	}

	r.mu.RLock()
	class, ok := r.classes[t]
	r.mu.RUnlock()
	if ok {
		return class, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buildClass(t, make(map[reflect.Type]bool)), nil
}

// isNilPointer reports whether v is a nil pointer, possibly behind further
// pointers.
func isNilPointer(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
	}
	return false
}

// Instance adapts v for the resolver. Nil values, including typed nil
// pointers, yield ErrNilValue. Values that already implement
// mirror.Instance are returned unchanged.
func (r *Registry) Instance(v any) (mirror.Instance, error) {
	if v == nil || isNilPointer(reflect.ValueOf(v)) {
		return nil, ErrNilValue
	}
	if inst, ok := v.(mirror.Instance); ok {
		return inst, nil
	}
	class, err := r.Class(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return newInstance(class, v), nil
}
