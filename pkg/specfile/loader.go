package specfile

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-reprgen/pkg/hierarchy"
	"github.com/goliatone/go-reprgen/pkg/model"
	"github.com/goliatone/go-reprgen/pkg/record"
	"github.com/goliatone/go-reprgen/pkg/style"
)

const restToken = "..."

// Option customises loading.
type Option func(*loader)

// WithStyles registers document templates on styles instead of a fresh
// registry. Classes may then refer to any style already registered there.
func WithStyles(styles *style.Registry) Option {
	return func(l *loader) {
		if styles != nil {
			l.doc.styles = styles
		}
	}
}

// WithLogger injects a logger for load traces.
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

type loader struct {
	doc    *Document
	logger *zap.Logger
}

func newLoader(opts []Option) *loader {
	l := &loader{
		doc:    newDocument(style.NewRegistry()),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// LoadFS walks fsys in lexical order and loads every YAML or JSON file into a
// single document. Later files may refer to classes declared by earlier ones.
// A nil fsys yields an empty document.
func LoadFS(fsys fs.FS, opts ...Option) (*Document, error) {
	l := newLoader(opts)
	if fsys == nil {
		return l.doc, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("specfile: read %s: %w", path, err)
		}
		return l.load(data, path)
	})
	if err != nil {
		return nil, err
	}
	return l.doc, nil
}

// LoadFile loads the single document at path in fsys.
func LoadFile(fsys fs.FS, path string, opts ...Option) (*Document, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("specfile: read %s: %w", path, err)
	}
	return Parse(data, path, opts...)
}

// Parse loads a document from data. source names it in error messages.
func Parse(data []byte, source string, opts ...Option) (*Document, error) {
	l := newLoader(opts)
	if err := l.load(data, source); err != nil {
		return nil, err
	}
	return l.doc, nil
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

type documentFile struct {
	Styles    yaml.Node      `yaml:"styles"`
	Classes   []classFile    `yaml:"classes"`
	Instances []instanceFile `yaml:"instances"`
}

type classFile struct {
	Name        string    `yaml:"name"`
	Bases       []string  `yaml:"bases"`
	Slots       []string  `yaml:"slots"`
	Repr        yaml.Node `yaml:"repr"`
	Style       string    `yaml:"style"`
	SkipPrivate *bool     `yaml:"skipPrivate"`
	Override    bool      `yaml:"override"`
	TopDown     *bool     `yaml:"topDown"`
	TypeName    string    `yaml:"typeName"`
}

type instanceFile struct {
	Name       string    `yaml:"name"`
	Class      string    `yaml:"class"`
	Attributes yaml.Node `yaml:"attributes"`
}

func (l *loader) load(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("specfile: file %s is empty", source)
	}

	var file documentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("specfile: parse %s: %w", source, err)
	}

	if err := l.loadStyles(file.Styles, source); err != nil {
		return err
	}
	for _, raw := range file.Classes {
		if err := l.loadClass(raw, source); err != nil {
			return err
		}
	}
	for _, raw := range file.Instances {
		if err := l.loadInstance(raw, source); err != nil {
			return err
		}
	}

	l.logger.Debug("spec document loaded",
		zap.String("source", source),
		zap.Int("classes", len(file.Classes)),
		zap.Int("instances", len(file.Instances)),
	)
	return nil
}

func (l *loader) loadStyles(node yaml.Node, source string) error {
	if node.Kind == 0 || isNull(&node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("specfile: %s:%d: styles must be a mapping of name to template", source, node.Line)
	}
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key, value := node.Content[idx], node.Content[idx+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("specfile: %s:%d: style %q must be a template string", source, value.Line, key.Value)
		}
		if err := l.doc.styles.RegisterTemplate(key.Value, value.Value); err != nil {
			return fmt.Errorf("specfile: %s:%d: %w", source, key.Line, err)
		}
	}
	return nil
}

func (l *loader) loadClass(raw classFile, source string) error {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return fmt.Errorf("specfile: %s: class name is required", source)
	}
	if _, exists := l.doc.classes[name]; exists {
		return fmt.Errorf("specfile: %s: duplicate class %q", source, name)
	}

	bases := make([]*hierarchy.Class, 0, len(raw.Bases))
	for _, baseName := range raw.Bases {
		base, ok := l.doc.classes[strings.TrimSpace(baseName)]
		if !ok {
			return fmt.Errorf("specfile: %s: class %q has unknown base %q", source, name, baseName)
		}
		bases = append(bases, base)
	}

	spec, err := l.renderSpec(raw, name, source)
	if err != nil {
		return err
	}

	class, err := record.Define(name, bases, raw.Slots, spec)
	if err != nil {
		return fmt.Errorf("specfile: %s: %w", source, err)
	}
	l.doc.classes[name] = class
	l.doc.order = append(l.doc.order, name)
	return nil
}

// renderSpec returns nil when the class has no repr key.
func (l *loader) renderSpec(raw classFile, name, source string) (*model.RenderSpec, error) {
	if raw.Repr.Kind == 0 {
		return nil, nil
	}

	result, err := parseRepr(&raw.Repr)
	if err != nil {
		return nil, fmt.Errorf("specfile: %s:%d: class %q: %w", source, raw.Repr.Line, name, err)
	}

	opts := []model.Option{
		model.WithOverride(raw.Override),
		model.WithTypeName(raw.TypeName),
	}
	if raw.SkipPrivate != nil {
		opts = append(opts, model.WithSkipPrivate(*raw.SkipPrivate))
	}
	if raw.TopDown != nil {
		opts = append(opts, model.WithTopDown(*raw.TopDown))
	}
	if styleName := strings.TrimSpace(raw.Style); styleName != "" {
		if !l.doc.styles.Has(styleName) {
			return nil, fmt.Errorf("specfile: %s: class %q: %w: %q", source, name, style.ErrUnknownStyle, styleName)
		}
		opts = append(opts, model.WithStyleName(styleName))
	}
	return model.NewRenderSpec(model.Static(result), opts...), nil
}

// parseRepr maps a repr node onto model.Parse input: null or "..." mean all
// attributes, a sequence lists names, "..." markers, one-element lists
// (values) and two-element lists or key/value mappings (literals).
func parseRepr(node *yaml.Node) (model.Result, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) || node.Value == restToken {
			return model.All(), nil
		}
		return model.Parse(node.Value)
	case yaml.SequenceNode:
	default:
		return model.Result{}, &model.ConfigurationError{Detail: "repr must be null, \"...\" or a sequence"}
	}

	items := make([]any, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			if item.Value == restToken {
				items = append(items, model.Rest)
				continue
			}
			if item.ShortTag() != "!!str" {
				return model.Result{}, &model.ConfigurationError{Detail: fmt.Sprintf("line %d: attribute %s is not a name", item.Line, item.Value)}
			}
			items = append(items, item.Value)

		case yaml.SequenceNode:
			var tuple []any
			if err := item.Decode(&tuple); err != nil {
				return model.Result{}, err
			}
			items = append(items, model.Tuple(tuple))

		case yaml.MappingNode:
			var literal struct {
				Key   any `yaml:"key"`
				Value any `yaml:"value"`
			}
			if err := item.Decode(&literal); err != nil {
				return model.Result{}, err
			}
			if literal.Key == nil {
				items = append(items, model.Tuple{literal.Value})
				continue
			}
			items = append(items, model.Tuple{literal.Key, literal.Value})

		default:
			return model.Result{}, &model.ConfigurationError{Detail: fmt.Sprintf("line %d: unsupported attribute", item.Line)}
		}
	}
	return model.Parse(items)
}

func (l *loader) loadInstance(raw instanceFile, source string) error {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return fmt.Errorf("specfile: %s: instance name is required", source)
	}
	if _, exists := l.doc.instances[name]; exists {
		return fmt.Errorf("specfile: %s: duplicate instance %q", source, name)
	}
	class, ok := l.doc.classes[strings.TrimSpace(raw.Class)]
	if !ok {
		return fmt.Errorf("specfile: %s: instance %q has unknown class %q", source, name, raw.Class)
	}

	rec := record.New(class)
	attrs := &raw.Attributes
	if attrs.Kind != 0 && !isNull(attrs) {
		if attrs.Kind != yaml.MappingNode {
			return fmt.Errorf("specfile: %s:%d: instance %q attributes must be a mapping", source, attrs.Line, name)
		}
		for idx := 0; idx+1 < len(attrs.Content); idx += 2 {
			key, valueNode := attrs.Content[idx], attrs.Content[idx+1]
			var value any
			if err := valueNode.Decode(&value); err != nil {
				return fmt.Errorf("specfile: %s:%d: instance %q attribute %q: %w", source, valueNode.Line, name, key.Value, err)
			}
			rec.Set(key.Value, value)
		}
	}

	l.doc.instances[name] = Instance{Name: name, Source: source, Record: rec}
	l.doc.instOrder = append(l.doc.instOrder, name)
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
