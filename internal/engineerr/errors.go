// Package engineerr defines the error taxonomy shared by every component
// of the engine: configuration failures, capacity and invariant
// violations, audit I/O failures, and the seam verifier's diagnostic.
package engineerr

import "fmt"

// ConfigError wraps a missing, malformed, or contradictory CLI/config value.
// It is always fatal before any work starts.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Msg)
}

// NewConfigError builds a ConfigError for the named field.
func NewConfigError(field, msg string) *ConfigError {
	return &ConfigError{Field: field, Msg: msg}
}

// CapacityExceeded indicates totalSlots or a per-segment word count
// overflowed a platform array bound during Bitset construction.
type CapacityExceeded struct {
	Requested int64
	Limit     int64
	What      string
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("capacity exceeded: %s requested %d exceeds limit %d", e.What, e.Requested, e.Limit)
}

// NewCapacityExceeded builds a CapacityExceeded for the named quantity.
func NewCapacityExceeded(what string, requested, limit int64) *CapacityExceeded {
	return &CapacityExceeded{What: what, Requested: requested, Limit: limit}
}

// WordCountMismatch is raised when a thread-local word array length
// disagrees with the shared segment's word count at merge time. It is an
// internal invariant violation and is fatal to the current run.
type WordCountMismatch struct {
	Segment  int
	Expected int
	Got      int
}

func (e *WordCountMismatch) Error() string {
	return fmt.Sprintf("word count mismatch in segment %d: expected %d words, got %d", e.Segment, e.Expected, e.Got)
}

// IOError wraps an audit write/read failure. The orchestrator logs it and
// continues — the affected segment's result is not durable, so Resume
// will recompute it on the next run.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error during %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err with the operation that produced it.
func NewIOError(op string, err error) *IOError {
	return &IOError{Op: op, Err: err}
}

// SeamAnomaly is the seam verifier's diagnostic: an even in the
// boundary band has a witness pair under MR64 but its coverage bit is
// unset. It never alters Covered — it flags a bug to investigate.
type SeamAnomaly struct {
	N int64
	Q int64
	P int64
}

func (e *SeamAnomaly) Error() string {
	return fmt.Sprintf("seam anomaly: n=%d uncovered but witness p=%d q=%d exists", e.N, e.P, e.Q)
}
