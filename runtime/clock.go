// Package runtime is the concrete shape of the "out of scope" ledger
// collaborator: the interfaces the core consumes for signer
// authentication, native-token value transfer, and time.
// A real deployment backs these with the host ledger's own primitives; the
// Simulator in this package exists only to make the core's own test suite
// self-contained.
package runtime

import "time"

// Clock supplies the current time to operations that need it. marketplace
// uses it for claimed_at and the CLAIM_TIMEOUT_SECONDS comparison.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock with the host's wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}
