package domain

import "errors"

// ErrInvalidInput is returned when a planning request or rule set fails
// validation before simulation starts (non-positive distance/duration,
// malformed coordinates, empty locations). Not retried.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvariant marks an internal accounting bug: a computed segment with
// negative duration, or a daily schedule with gaps or overlaps. The engine
// fails loudly with this error rather than emit a malformed schedule.
var ErrInvariant = errors.New("invariant violation")

// ErrNotFound is returned when a requested trip does not exist.
var ErrNotFound = errors.New("not found")
