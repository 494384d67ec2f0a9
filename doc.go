// Package reprgen builds debug representations of Go values from per-type
// declarations.
//
// A declaration names the attributes a type wants to show. Declarations
// compose along the embedding hierarchy: a struct embedding another inherits
// its declaration and adds its own, ancestors first unless configured
// otherwise.
//
//	type Point struct{ X, Y int }
//
//	func init() {
//		reprgen.MustDeclare(func(Point) reprgen.Result {
//			return reprgen.Names("X", "Y")
//		})
//	}
//
//	func (p Point) String() string { return reprgen.Repr(p) }
//
// fmt.Println(Point{1, 2}) then prints Point(X=1, Y=2). Returning All (or
// Remaining inside a sequence) shows every bound, public attribute not named
// elsewhere. Styles pick the layout: call (the default), angle, html, a
// custom StyleFunc, or a pongo2 template registered on the style registry.
package reprgen
