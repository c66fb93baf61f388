// Package retry contains the [Policy] interface and its implementations, used to retry failed
// allocations.
package retry

import "context"

// Policy decides whether and when another attempt at a failed operation is made.
//
// Implementations are not safe for concurrent use. Each operation derives its own instance.
type Policy interface {
	// Attempt blocks until the next attempt can be made and reports whether it should be made at
	// all. The first call never blocks. It returns false once the attempts are exhausted or ctx is
	// done.
	Attempt(ctx context.Context) bool
	// Derive returns a fresh Policy with the same configuration and no attempts made.
	Derive() Policy
}
