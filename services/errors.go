package services

import "errors"

// ErrInvalidArgument marks a programming mistake in the caller, such as a
// non-positive page size or an unknown sort key. Bad data never produces it.
var ErrInvalidArgument = errors.New("invalid argument")
