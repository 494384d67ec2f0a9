package registry

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-reprgen/pkg/model"
)

// Declare attaches a typed declaration to T. T may be a struct type or a
// pointer to one; the declaration receives the part of the rendered value
// that T describes.
func Declare[T any](reg *Registry, fn func(T) model.Result, opts ...model.Option) error {
	if fn == nil {
		return &model.SignatureError{Type: typeName(typeOf[T]()), Detail: "declaration is nil"}
	}
	return DeclareE(reg, func(self T) (model.Result, error) {
		return fn(self), nil
	}, opts...)
}

// DeclareE is Declare for declarations that can fail.
func DeclareE[T any](reg *Registry, fn func(T) (model.Result, error), opts ...model.Option) error {
	target := typeOf[T]()
	if target.Kind() == reflect.Interface {
		return &model.SignatureError{Type: target.String(), Detail: "declarations attach to concrete types"}
	}
	if fn == nil {
		return &model.SignatureError{Type: typeName(target), Detail: "declaration is nil"}
	}
	if reg == nil {
		return fmt.Errorf("registry: registry is required")
	}

	declare := func(self any) (model.Result, error) {
		arg, err := coerce(self, target)
		if err != nil {
			return model.Result{}, err
		}
		return fn(arg.Interface().(T))
	}
	return reg.Register(target, model.NewRenderSpec(declare, opts...))
}

// DeclareFunc attaches an untyped declaration to the type of sample. fn must
// be callable with exactly one argument, the instance; extra variadic
// parameters are allowed. It returns one value, converted with model.Parse,
// optionally followed by an error. Incompatible functions fail here, before
// anything is rendered.
func DeclareFunc(reg *Registry, sample any, fn any, opts ...model.Option) error {
	if sample == nil {
		return fmt.Errorf("registry: sample value is required")
	}
	if reg == nil {
		return fmt.Errorf("registry: registry is required")
	}
	key := classKey(reflect.TypeOf(sample))

	param, err := checkSignature(key, fn)
	if err != nil {
		return err
	}

	fv := reflect.ValueOf(fn)
	withErr := fv.Type().NumOut() == 2
	declare := func(self any) (model.Result, error) {
		arg, err := coerce(self, param)
		if err != nil {
			return model.Result{}, err
		}
		out := fv.Call([]reflect.Value{arg})
		if withErr && !out[1].IsNil() {
			return model.Result{}, out[1].Interface().(error)
		}
		return model.Parse(out[0].Interface())
	}
	return reg.Register(key, model.NewRenderSpec(declare, opts...))
}

// checkSignature returns the parameter type that receives the instance.
func checkSignature(key reflect.Type, fn any) (reflect.Type, error) {
	fail := func(format string, args ...any) error {
		return &model.SignatureError{Type: typeName(key), Detail: fmt.Sprintf(format, args...)}
	}

	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fail("declaration is not a function: %T", fn)
	}
	ft := fv.Type()

	required := ft.NumIn()
	if ft.IsVariadic() {
		required--
	}

	var param reflect.Type
	switch {
	case required == 1:
		param = ft.In(0)
	case required == 0 && ft.IsVariadic():
		param = ft.In(0).Elem()
	default:
		return nil, fail("declaration takes %d required arguments, want 1", required)
	}
	if !key.AssignableTo(param) && !reflect.PointerTo(key).AssignableTo(param) {
		return nil, fail("declaration parameter %s cannot receive %s", param, key)
	}

	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return nil, fail("declaration must return a value, optionally followed by an error")
	}
	return param, nil
}

// coerce converts the value handed to a declaration into target, taking or
// dereferencing its address as needed.
func coerce(self any, target reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(self)
	if !v.IsValid() {
		return reflect.Zero(target), nil
	}
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if v.Kind() == reflect.Pointer && v.Type().Elem().AssignableTo(target) {
		if v.IsNil() {
			return reflect.Zero(target), nil
		}
		return v.Elem(), nil
	}
	if target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Elem()) {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("registry: cannot pass %s to a declaration for %s", v.Type(), target)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
