// Package style turns resolved attributes into text. Call and Angle are the
// two classic layouts, HTML wraps the call layout in sanitised span markup
// and Template compiles pongo2 sources into styles. Registry names styles so
// declarations and documents can refer to them.
package style
