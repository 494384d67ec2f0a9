package style

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reprgen/pkg/model"
)

type named struct{ name string }

func (n named) String() string { return fmt.Sprintf("<object named %s>", n.name) }

type custom struct{}

func (custom) Repr() string     { return "custom!" }
func (custom) String() string   { return "ignored" }
func (custom) GoString() string { return "ignored too" }

type color string

type opaque struct {
	secret string
	count  int
}

func TestBuiltinStyles(t *testing.T) {
	attrs := []model.Attribute{
		model.NamedAttr("foo", 1),
		model.NamedAttr("bar", 2),
	}

	cases := []struct {
		name  string
		fn    model.StyleFunc
		attrs []model.Attribute
		want  string
	}{
		{name: "call", fn: Call, attrs: attrs, want: "Basic(foo=1, bar=2)"},
		{name: "angle", fn: Angle, attrs: attrs, want: "<Basic foo=1 bar=2>"},
		{name: "call empty", fn: Call, want: "Basic()"},
		{name: "angle empty", fn: Angle, want: "<Basic>"},
		{
			name:  "unnamed and non-string keys",
			fn:    Call,
			attrs: []model.Attribute{model.UnnamedAttr("x"), model.NamedAttr(3, true)},
			want:  `Basic("x", 3=true)`,
		},
		{
			name:  "nested stringers",
			fn:    Call,
			attrs: []model.Attribute{model.NamedAttr("foo", named{"foo"}), model.NamedAttr("bar", named{"bar"})},
			want:  "Basic(foo=<object named foo>, bar=<object named bar>)",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(nil, "Basic", tc.attrs); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRepr(t *testing.T) {
	var nilPtr *named
	value := reflect.ValueOf(opaque{secret: "s", count: 2})

	cases := []struct {
		name  string
		input any
		want  string
	}{
		{name: "nil", input: nil, want: "nil"},
		{name: "nil pointer", input: nilPtr, want: "nil"},
		{name: "int", input: 42, want: "42"},
		{name: "string quoted", input: `say "hi"`, want: `"say \"hi\""`},
		{name: "named string quoted", input: color("red"), want: `"red"`},
		{name: "bytes quoted", input: []byte("ab"), want: `"ab"`},
		{name: "stringer", input: named{"x"}, want: "<object named x>"},
		{name: "reprer wins", input: custom{}, want: "custom!"},
		{name: "error", input: errors.New("boom"), want: "boom"},
		{name: "slice", input: []int{1, 2}, want: "[1 2]"},
		{name: "unexported string field", input: value.Field(0), want: `"s"`},
		{name: "unexported int field", input: value.Field(1), want: "2"},
		{name: "invalid reflect value", input: reflect.Value{}, want: "nil"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Repr(tc.input); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHTML_SanitisesValues(t *testing.T) {
	out := HTML(nil, "Basic", []model.Attribute{
		model.NamedAttr("foo", 1),
		model.NamedAttr("bar", named{"<script>alert(1)</script>"}),
	})

	if !strings.HasPrefix(out, `<span class="repr"><span class="repr-type">Basic</span>(`) {
		t.Fatalf("unexpected markup prefix: %s", out)
	}
	if !strings.Contains(out, `<span class="repr-key">foo</span>=<span class="repr-value">1</span>`) {
		t.Fatalf("missing foo attribute: %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag survived sanitising: %s", out)
	}
}

func TestTemplate(t *testing.T) {
	fn, err := Template(`{{ type }}{% for a in attributes %} {{ a.text }}{% endfor %}`)
	if err != nil {
		t.Fatalf("compile template: %v", err)
	}

	got := fn(nil, "Basic", []model.Attribute{
		model.NamedAttr("foo", 1),
		model.NamedAttr("bar", "x"),
		model.UnnamedAttr(3),
	})
	if want := `Basic foo=1 bar="x" 3`; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestTemplate_Errors(t *testing.T) {
	if _, err := Template("  "); err == nil {
		t.Fatal("expected error for empty template")
	}
	if _, err := Template("{% for %}"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	want := []string{"()", "<>", "angle", "call", "html"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("builtin styles mismatch (-want +got):\n%s", diff)
	}

	if err := reg.Register("call", Call); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(" ", Call); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := reg.RegisterTemplate("brace", "{{ type }}{}"); err != nil {
		t.Fatalf("register template: %v", err)
	}
	if !reg.Has("brace") {
		t.Fatal("template style not registered")
	}

	fn, err := reg.Resolve(model.StyleNamed("<>"))
	if err != nil {
		t.Fatalf("resolve alias: %v", err)
	}
	if got := fn(nil, "T", nil); got != "<T>" {
		t.Fatalf("alias resolved to wrong style: %q", got)
	}

	fn, err = reg.Resolve(model.Style{})
	if err != nil {
		t.Fatalf("resolve inherit: %v", err)
	}
	if got := fn(nil, "T", nil); got != "T()" {
		t.Fatalf("inherit should resolve to call style, got %q", got)
	}

	if _, err := reg.Resolve(model.StyleNamed("missing")); !errors.Is(err, ErrUnknownStyle) {
		t.Fatalf("expected ErrUnknownStyle, got %v", err)
	}
}
