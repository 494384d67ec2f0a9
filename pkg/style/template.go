package style

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-reprgen/pkg/model"
)

// Failure is the panic value raised by a style that cannot produce output.
// Renderers recover it and return Err to their caller.
type Failure struct {
	Style string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("style: %s: %v", f.Style, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Template compiles a pongo2 template into a style function. The template
// sees:
//
//	type        the display type name
//	instance    the rendered object
//	attributes  a list with key, value, named, and text (the formatted attribute)
//
// Autoescaping is disabled; use the html style for markup.
func Template(source string) (model.StyleFunc, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("style: template source is empty")
	}
	tpl, err := pongo2.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("style: parse template: %w", err)
	}

	return func(instance any, typeName string, attrs []model.Attribute) string {
		items := make([]map[string]any, 0, len(attrs))
		for _, attr := range attrs {
			item := map[string]any{
				"named": attr.Named,
				"value": Repr(attr.Value),
				"text":  FormatAttribute(attr),
			}
			if attr.Named {
				item["key"] = FormatKey(attr.Key)
			}
			items = append(items, item)
		}

		out, err := tpl.Execute(pongo2.Context{
			"type":       typeName,
			"instance":   instance,
			"attributes": items,
		})
		if err != nil {
			panic(&Failure{Style: "template", Err: err})
		}
		return out
	}, nil
}
