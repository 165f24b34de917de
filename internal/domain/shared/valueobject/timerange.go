package valueobject

import (
	"errors"
	"fmt"
	"time"
)

// TimeRange is a half-open interval [Start, End).
// Two ranges that only touch at a boundary do not overlap.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange creates a TimeRange, requiring End to be after Start
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, errors.New("end must be after start")
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Contains reports whether t falls inside the interval
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration returns the length of the interval
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// ISOWeek returns the ISO year and week number of the interval start
func (r TimeRange) ISOWeek() (year, week int) {
	return r.Start.ISOWeek()
}

// String returns a readable representation
func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}
