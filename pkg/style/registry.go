package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-reprgen/pkg/model"
)

// ErrUnknownStyle is returned when a style name is not registered.
var ErrUnknownStyle = errors.New("style: unknown style")

// Registry stores style functions by name. The zero value is not usable; use
// NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]model.StyleFunc
}

// NewRegistry creates a registry holding the built-in styles: call (alias
// "()"), angle (alias "<>") and html.
func NewRegistry() *Registry {
	r := &Registry{
		styles: make(map[string]model.StyleFunc),
	}
	r.MustRegister(model.StyleNameCall, Call)
	r.MustRegister("()", Call)
	r.MustRegister(model.StyleNameAngle, Angle)
	r.MustRegister("<>", Angle)
	r.MustRegister(model.StyleNameHTML, HTML)
	return r
}

// Register adds a style. Duplicate names return an error.
func (r *Registry) Register(name string, fn model.StyleFunc) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("style: style name is required")
	}
	if fn == nil {
		return fmt.Errorf("style: style %q has no function", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.styles[name]; exists {
		return fmt.Errorf("style: style %q already registered", name)
	}
	r.styles[name] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, fn model.StyleFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// RegisterTemplate compiles source with Template and registers the result.
func (r *Registry) RegisterTemplate(name, source string) error {
	fn, err := Template(source)
	if err != nil {
		return fmt.Errorf("style: %q: %w", name, err)
	}
	return r.Register(name, fn)
}

// Get retrieves a style by name.
func (r *Registry) Get(name string) (model.StyleFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.styles[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return fn, nil
}

// MustGet panics if the style is missing.
func (r *Registry) MustGet(name string) model.StyleFunc {
	fn, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// List returns the sorted style names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a style is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.styles[strings.TrimSpace(name)]
	return ok
}

// Resolve turns a declaration style into a function. A custom function wins
// over a name; the inherit style resolves to call.
func (r *Registry) Resolve(s model.Style) (model.StyleFunc, error) {
	if s.Func != nil {
		return s.Func, nil
	}
	if s.Name == "" {
		return Call, nil
	}
	return r.Get(s.Name)
}
