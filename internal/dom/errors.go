package dom

import "errors"

// Sentinel errors for the dom package.
var (
	// ErrInvalidSelector is returned when a CSS selector cannot be compiled.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrNoBody is returned by Parse when the input has no body element.
	ErrNoBody = errors.New("document has no body")
)
