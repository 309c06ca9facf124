package clock

import "time"

// Clock supplies the current UTC instant and IANA timezone lookups.
// Services take a Clock instead of calling time.Now directly so that
// lateness and overtime math is deterministic in tests.
type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time

	// LoadLocation resolves an IANA timezone name.
	LoadLocation(name string) (*time.Location, error)
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) LoadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

// NewSystemClock returns a Clock backed by the wall clock and the host tzdata.
func NewSystemClock() Clock {
	return systemClock{}
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant.UTC()
}

func (f Fixed) LoadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
