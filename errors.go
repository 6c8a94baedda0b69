package main

import "errors"

// Rendering failures are caller contract violations, not transient
// conditions. Each category is a sentinel so callers can branch with
// errors.Is after the usual fmt.Errorf %w wrapping.
var (
	// ErrInvalidLevel reports a heading level outside the supported set {1, 2}.
	ErrInvalidLevel = errors.New("invalid heading level")

	// ErrInvalidConfig reports an unusable render configuration, such as a
	// non-positive toctree depth.
	ErrInvalidConfig = errors.New("invalid render config")

	// ErrMissingDescriptor reports a nil package descriptor.
	ErrMissingDescriptor = errors.New("missing package descriptor")
)
