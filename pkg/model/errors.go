package model

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("repr: invalid declaration")
	// ErrSignature matches every SignatureError via errors.Is.
	ErrSignature = errors.New("repr: incompatible declaration signature")
	// ErrAttributeNotFound is returned when a named attribute does not exist on
	// the instance.
	ErrAttributeNotFound = errors.New("repr: attribute not found")
	// ErrNotDeclared is returned when no type in the hierarchy declares a repr.
	ErrNotDeclared = errors.New("repr: no declaration in type hierarchy")
)

// ConfigurationError reports a malformed declaration return value. It is a
// programmer error surfaced at render time.
type ConfigurationError struct {
	Type   string
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("repr: invalid declaration: %s", e.Detail)
	}
	return fmt.Sprintf("repr: invalid declaration for %s: %s", e.Type, e.Detail)
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// SignatureError reports a declaration function that cannot be called with
// exactly one argument, the instance. It is raised when the declaration is
// registered, before any rendering.
type SignatureError struct {
	Type   string
	Detail string
}

func (e *SignatureError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("repr: incompatible declaration signature: %s", e.Detail)
	}
	return fmt.Sprintf("repr: incompatible declaration signature for %s: %s", e.Type, e.Detail)
}

// Is lets errors.Is(err, ErrSignature) match.
func (e *SignatureError) Is(target error) bool {
	return target == ErrSignature
}

// AttributeError reports a failed attribute lookup. It unwraps to
// ErrAttributeNotFound unless Err carries a more specific cause.
type AttributeError struct {
	Type string
	Name string
	Err  error
}

func (e *AttributeError) Error() string {
	if e.Err != nil && !errors.Is(e.Err, ErrAttributeNotFound) {
		return fmt.Sprintf("repr: %s.%s: %v", e.Type, e.Name, e.Err)
	}
	return fmt.Sprintf("repr: %s has no attribute %q", e.Type, e.Name)
}

func (e *AttributeError) Unwrap() error {
	if e.Err == nil {
		return ErrAttributeNotFound
	}
	return e.Err
}
