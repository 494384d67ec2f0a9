package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reprgen/pkg/mirror"
	"github.com/goliatone/go-reprgen/pkg/model"
	"github.com/goliatone/go-reprgen/pkg/registry"
	"github.com/goliatone/go-reprgen/pkg/resolver"
)

type SlotsBase struct {
	A *int `repr:"a"`
	B *int `repr:"b"`
}

type SlotsDerived struct {
	SlotsBase
	C *int `repr:"c"`
	D *int `repr:"d"`
}

type DictDerived struct {
	SlotsDerived
	Extra mirror.Dict
}

type Tagged struct {
	Name    string
	Count   int            `repr:"count,omitzero"`
	Hidden  string         `repr:"-"`
	Private string         `repr:"_private"`
	Labels  map[string]int `repr:",inline"`
	secret  string
}

func (t Tagged) Upper() string { return "UPPER:" + t.Name }

func (t *Tagged) Fails() (string, error) { return "", errors.New("not today") }

type Leaf struct {
	Value string
}

type Branch struct {
	*Leaf
	Size int
}

type entity struct {
	ID int `repr:"id"`
}

type Item struct {
	entity
	Name string `repr:"name"`
}

type Ref struct {
	*entity
	Label string `repr:"label"`
}

func intp(v int) *int { return &v }

func names(attrs []model.Attribute) []any {
	out := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr.Key)
	}
	return out
}

func TestRegistry_ClassGraph(t *testing.T) {
	reg := registry.New()

	class, err := reg.Class(reflect.TypeOf(&DictDerived{}))
	if err != nil {
		t.Fatalf("class: %v", err)
	}

	var mro []string
	for _, entry := range class.MRO() {
		mro = append(mro, entry.Name())
	}
	if diff := cmp.Diff([]string{"DictDerived", "SlotsDerived", "SlotsBase"}, mro); diff != "" {
		t.Fatalf("mro mismatch (-want +got):\n%s", diff)
	}

	again, err := reg.Class(reflect.TypeOf(DictDerived{}))
	if err != nil {
		t.Fatalf("class: %v", err)
	}
	if again != class {
		t.Fatal("T and *T should share a cached class")
	}

	tagged, err := reg.Class(reflect.TypeOf(Tagged{}))
	if err != nil {
		t.Fatalf("class: %v", err)
	}
	var slots []string
	var private []string
	for _, slot := range tagged.Slots() {
		slots = append(slots, slot.Name)
		if slot.Private {
			private = append(private, slot.Name)
		}
	}
	if diff := cmp.Diff([]string{"Name", "count", "_private", "secret"}, slots); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"_private", "secret"}, private); diff != "" {
		t.Fatalf("private slots mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_SlotsAndDict(t *testing.T) {
	reg := registry.New()
	if err := registry.Declare(reg, func(*SlotsBase) model.Result { return model.All() }); err != nil {
		t.Fatalf("declare: %v", err)
	}
	r := resolver.New()

	full := &DictDerived{SlotsDerived: SlotsDerived{SlotsBase: SlotsBase{A: intp(1), B: intp(2)}, C: intp(3), D: intp(4)}}
	full.Extra.Set("e", 5)
	full.Extra.Set("f", 6)

	partial := &DictDerived{SlotsDerived: SlotsDerived{SlotsBase: SlotsBase{A: intp(1)}, C: intp(3)}}
	partial.Extra.Set("e", 5)
	partial.Extra.Set("f", 6)

	cases := []struct {
		name  string
		value any
		want  []any
	}{
		{
			name:  "slots derived full",
			value: SlotsDerived{SlotsBase: SlotsBase{A: intp(1), B: intp(2)}, C: intp(3), D: intp(4)},
			want:  []any{"a", "b", "c", "d"},
		},
		{
			name:  "slots derived partial",
			value: SlotsDerived{SlotsBase: SlotsBase{A: intp(1)}, C: intp(3)},
			want:  []any{"a", "c"},
		},
		{name: "dict derived full", value: full, want: []any{"a", "b", "c", "d", "e", "f"}},
		{name: "dict derived partial", value: partial, want: []any{"a", "c", "e", "f"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			inst, err := reg.Instance(tc.value)
			if err != nil {
				t.Fatalf("instance: %v", err)
			}
			got, err := r.Resolve(inst)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if diff := cmp.Diff(tc.want, names(got.Attributes)); diff != "" {
				t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInstance_Lookup(t *testing.T) {
	reg := registry.New()
	value := &Tagged{Name: "x", Count: 0, Hidden: "h", Labels: map[string]int{"zeta": 26, "alpha": 1}, secret: "s"}

	inst, err := reg.Instance(value)
	if err != nil {
		t.Fatalf("instance: %v", err)
	}

	cases := []struct {
		name string
		want any
	}{
		{name: "Name", want: "x"},
		{name: "count", want: 0},
		{name: "Count", want: 0},
		{name: "Hidden", want: "h"},
		{name: "alpha", want: 1},
		{name: "upper", want: "UPPER:x"},
		{name: "Upper", want: "UPPER:x"},
	}
	for _, tc := range cases {
		got, err := inst.Lookup(tc.name)
		if err != nil {
			t.Fatalf("lookup %s: %v", tc.name, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("lookup %s mismatch (-want +got):\n%s", tc.name, diff)
		}
	}

	secret, err := inst.Lookup("secret")
	if err != nil {
		t.Fatalf("lookup secret: %v", err)
	}
	if rv, ok := secret.(reflect.Value); !ok || rv.String() != "s" {
		t.Fatalf("unexported field should come back as a reflect.Value, got %#v", secret)
	}

	if _, err := inst.Lookup("missing"); !errors.Is(err, model.ErrAttributeNotFound) {
		t.Fatalf("expected ErrAttributeNotFound, got %v", err)
	}

	_, err = inst.Lookup("fails")
	var attrErr *model.AttributeError
	if !errors.As(err, &attrErr) || attrErr.Err == nil || attrErr.Err.Error() != "not today" {
		t.Fatalf("expected method error to surface, got %v", err)
	}

	if diff := cmp.Diff([]string{"alpha", "zeta"}, inst.Dict()); diff != "" {
		t.Fatalf("inline map keys mismatch (-want +got):\n%s", diff)
	}
}

func TestInstance_Bound(t *testing.T) {
	reg := registry.New()
	if err := registry.Declare(reg, func(Tagged) model.Result { return model.All() }); err != nil {
		t.Fatalf("declare: %v", err)
	}

	inst, err := reg.Instance(Tagged{Name: "x"})
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	got, err := resolver.New().Resolve(inst)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]any{"Name"}, names(got.Attributes)); diff != "" {
		t.Fatalf("zero omitzero slot should be unbound (-want +got):\n%s", diff)
	}

	inst, err = reg.Instance(Tagged{Name: "x", Count: 2, Labels: map[string]int{"k": 1}})
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	got, err = resolver.New().Resolve(inst)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]any{"Name", "count", "k"}, names(got.Attributes)); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestInstance_NilEmbeddedPointer(t *testing.T) {
	reg := registry.New()
	var seen []*Leaf
	if err := registry.Declare(reg, func(leaf *Leaf) model.Result {
		seen = append(seen, leaf)
		return model.All()
	}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := registry.Declare(reg, func(Branch) model.Result { return model.All() }); err != nil {
		t.Fatalf("declare: %v", err)
	}

	inst, err := reg.Instance(Branch{Size: 3})
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	got, err := resolver.New().Resolve(inst)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]any{"Size"}, names(got.Attributes)); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if len(seen) != 1 || seen[0] != nil {
		t.Fatalf("declaration should receive a nil *Leaf, got %#v", seen)
	}

	if _, err := inst.Lookup("Value"); err == nil {
		t.Fatal("expected lookup through a nil embedded pointer to fail")
	}

	leaf := &Leaf{Value: "v"}
	inst, err = reg.Instance(&Branch{Leaf: leaf, Size: 3})
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	got, err = resolver.New().Resolve(inst)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]any{"Value", "Size"}, names(got.Attributes)); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if seen[1] != leaf {
		t.Fatal("declaration should receive the embedded pointer itself")
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := registry.New()
	spec := model.NewRenderSpec(model.Static(model.All()))

	if err := reg.Register(reflect.TypeOf(Leaf{}), spec); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(reflect.TypeOf(&Leaf{}), spec); err == nil {
		t.Fatal("expected duplicate declaration error")
	}
	if err := reg.Register(reflect.TypeOf(Branch{}), nil); err == nil {
		t.Fatal("expected error for nil spec")
	}
	if !reg.Has(reflect.TypeOf(&Leaf{})) {
		t.Fatal("pointer type should resolve to the declared struct")
	}
	if got, ok := reg.Lookup(reflect.TypeOf(Leaf{})); !ok || got != spec {
		t.Fatal("lookup returned the wrong spec")
	}
	if types := reg.List(); len(types) != 1 || types[0] != reflect.TypeOf(Leaf{}) {
		t.Fatalf("unexpected declared types: %v", types)
	}
	if _, err := reg.Instance(nil); !errors.Is(err, registry.ErrNilValue) {
		t.Fatalf("expected ErrNilValue, got %v", err)
	}
}

func TestInstance_UnexportedBase(t *testing.T) {
	reg := registry.New()
	var seen []*entity
	if err := registry.Declare(reg, func(e *entity) model.Result {
		seen = append(seen, e)
		return model.Names("id")
	}); err != nil {
		t.Fatalf("declare: %v", err)
	}

	item := &Item{entity: entity{ID: 1}, Name: "x"}
	ref := &Ref{entity: &entity{ID: 2}, Label: "y"}

	for _, tc := range []struct {
		name  string
		value any
		part  *entity
	}{
		{name: "value", value: item, part: &item.entity},
		{name: "pointer", value: ref, part: ref.entity},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			inst, err := reg.Instance(tc.value)
			if err != nil {
				t.Fatalf("instance: %v", err)
			}
			base := inst.Class().Bases()[0]
			if got, ok := inst.As(base).(*entity); !ok || got != tc.part {
				t.Fatalf("As should return the embedded base, got %#v", inst.As(base))
			}
			value, err := inst.Lookup("id")
			if err != nil {
				t.Fatalf("lookup id: %v", err)
			}
			if value != tc.part.ID {
				t.Fatalf("lookup id = %#v, want %d", value, tc.part.ID)
			}
		})
	}

	if err := registry.Declare(reg, func(Item) model.Result { return model.Names("name") }); err != nil {
		t.Fatalf("declare: %v", err)
	}
	inst, err := reg.Instance(item)
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	got, err := resolver.New().Resolve(inst)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]any{"id", "name"}, names(got.Attributes)); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
	if last := seen[len(seen)-1]; last != &item.entity {
		t.Fatalf("declaration should receive the embedded base, got %p want %p", last, &item.entity)
	}
}

func TestRegistry_NilPointers(t *testing.T) {
	reg := registry.New()
	if err := registry.Declare(reg, func(Leaf) model.Result { return model.All() }); err != nil {
		t.Fatalf("declare: %v", err)
	}

	var leaf *Leaf
	cases := map[string]any{
		"nil pointer":            leaf,
		"pointer to nil pointer": &leaf,
	}
	for name, value := range cases {
		if _, err := reg.Instance(value); !errors.Is(err, registry.ErrNilValue) {
			t.Fatalf("%s: expected ErrNilValue, got %v", name, err)
		}
	}
}
