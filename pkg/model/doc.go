// Package model defines the declaration vocabulary shared by the resolver,
// the styles and the registries. A declaration function returns a Result:
// either All (show every visible attribute) or an ordered list of
// Descriptors naming attributes, literal key/value pairs, nameless values
// and the Remaining wildcard. Parse accepts the loose forms (strings, Tuple,
// Rest, nil) and normalises them into a Result, reporting malformed input as
// a ConfigurationError. Options carry the per-type rendering flags:
// the style, private filtering, override, walk direction and type name.
package model
