package ndn

import "time"

// Timer is the clock a node runs on.
type Timer interface {
	// Now returns current time.
	Now() time.Time
	// Schedule schedules the callback function to be called after the duration,
	// and returns a cancel callback to cancel the scheduled function.
	// The callback may run on any goroutine.
	Schedule(time.Duration, func()) func() error
	// Nonce generates a random nonce.
	Nonce() []byte
}
