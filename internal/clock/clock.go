// Package clock abstracts wall time so services can be tested with a
// frozen clock.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the real wall clock in UTC.
type System struct{}

func NewSystem() System { return System{} }

func (System) Now() time.Time { return time.Now().UTC() }
