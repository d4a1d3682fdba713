package state

import (
	"errors"
	"time"
)

// ErrNoSession is returned when an operation targets a user without a session.
var ErrNoSession = errors.New("state: no active session")

// Options configures a Manager.
type Options struct {
	// TTL is the idle lifetime of a session measured from Begin. Zero disables expiry.
	TTL time.Duration
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
}

type entry[T any] struct {
	value     T
	startedAt time.Time
}
