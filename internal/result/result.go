// Package result provides the tagged outcome container returned by domain
// operations. Expected domain failures (ownership mismatch, unknown listing,
// invalid status) travel as a failure Result; the Go error return is reserved
// for unexpected faults.
package result

// Result is either a success carrying a payload or a failure carrying a
// failure payload. It is returned, never panicked, so callers can branch
// exhaustively on the outcome.
type Result struct {
	value   any
	failure bool
}

// Ok returns a success Result carrying value.
func Ok(value any) Result {
	return Result{value: value}
}

// Fail returns a failure Result carrying value.
func Fail(value any) Result {
	return Result{value: value, failure: true}
}

// IsFailure reports whether the Result is a failure.
func (r Result) IsFailure() bool { return r.failure }

// IsSuccess reports whether the Result is a success.
func (r Result) IsSuccess() bool { return !r.failure }

// Value returns the carried payload, success or failure.
func (r Result) Value() any { return r.value }
