package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// StayRange is a half-open [Start, End) range of calendar dates, both kept
// as ISO YYYY-MM-DD strings. A stay ending on a date does not collide with
// one starting on that date.
type StayRange struct {
	Start string
	End   string
}

// NewStayRange validates both dates and the ordering. Start must be strictly
// before End.
func NewStayRange(start, end string) (StayRange, error) {
	for _, d := range []string{start, end} {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return StayRange{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidRange, d)
		}
	}
	if start >= end {
		return StayRange{}, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidRange, start, end)
	}
	return StayRange{Start: start, End: end}, nil
}

// Overlaps reports whether two stays share at least one night. ISO date
// strings order lexicographically the same as chronologically, so plain
// string comparison implements s1 < e2 && s2 < e1.
func (r StayRange) Overlaps(o StayRange) bool {
	return r.Start < o.End && o.Start < r.End
}
