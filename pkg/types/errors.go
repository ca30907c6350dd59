package types

import "errors"

// Store operation errors.
var (
	// ErrInvalidKey is returned for a non-empty key with an empty
	// dot-separated segment.
	ErrInvalidKey = errors.New("invalid key")

	// ErrEncoding wraps a failure to serialize a caller value. Nothing is
	// written when it is returned.
	ErrEncoding = errors.New("encoding value")

	// ErrNonFinite is returned by Add and Subtract when the stored number is
	// NaN or infinite. The stored value is left untouched.
	ErrNonFinite = errors.New("stored value is not a finite number")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("store is closed")
)
