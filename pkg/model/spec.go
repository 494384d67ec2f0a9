package model

// DeclareFunc is a declaration bound to its owning type. It receives the
// instance viewed as that type and returns the attributes to show.
type DeclareFunc func(self any) (Result, error)

// RenderSpec is the immutable declaration attached to one type.
type RenderSpec struct {
	Declare DeclareFunc
	Options Options
}

// NewRenderSpec pairs a declaration with its options.
func NewRenderSpec(declare DeclareFunc, opts ...Option) *RenderSpec {
	return &RenderSpec{
		Declare: declare,
		Options: NewOptions(opts...),
	}
}

// Static returns a DeclareFunc that always yields result.
func Static(result Result) DeclareFunc {
	return func(any) (Result, error) {
		return result, nil
	}
}
