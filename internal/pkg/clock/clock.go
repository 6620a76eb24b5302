package clock

import "time"

// Clock abstracts the current time so punch arithmetic is deterministic
// under test. Production code uses Real; tests pin a Fixed instant.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }
