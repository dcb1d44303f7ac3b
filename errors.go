package hdsprite

import "errors"

var (
	// ErrEmptyTarget is returned when a rule is constructed without a target.
	ErrEmptyTarget = errors.New("hdsprite: rule target is empty")

	// ErrMissingReplacement is returned by Compose when a base-variant rule
	// has neither a replacement image nor pixel overrides. The interceptor
	// treats the rule as inactive for that load.
	ErrMissingReplacement = errors.New("hdsprite: base-variant rule has no replacement image")

	// ErrNilOriginal is returned by Compose when no original buffer is given.
	ErrNilOriginal = errors.New("hdsprite: original image is nil")

	// ErrUnknownVariant is returned when a body variant name cannot be parsed.
	ErrUnknownVariant = errors.New("hdsprite: unknown body variant")
)
