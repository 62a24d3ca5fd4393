package model

import "errors"

var (
	// ErrTypeMismatch is reported when a merge source is not a kind of the
	// destination's schema.
	ErrTypeMismatch = errors.New("model: type mismatch")
	// ErrDecode wraps every failure to build an instance from its external
	// representation.
	ErrDecode = errors.New("model: decode failed")
	// ErrEmpty is returned by bulk encoding of an empty sequence.
	ErrEmpty = errors.New("model: empty sequence")
	// ErrIncomplete is returned when an instance is nil or misses a required
	// property.
	ErrIncomplete = errors.New("model: incomplete instance")
	// ErrNilModel is returned when an operation needs a non-nil instance.
	ErrNilModel = errors.New("model: nil instance")
)
