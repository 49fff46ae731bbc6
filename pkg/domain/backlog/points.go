package backlog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Points represents a story point estimate on the Fibonacci-style scale.
// Zero means the story has not been estimated yet.
type Points int

const (
	PointsUnknown Points = 0
	Points1       Points = 1
	Points2       Points = 2
	Points3       Points = 3
	Points5       Points = 5
	Points8       Points = 8
	Points13      Points = 13
	Points21      Points = 21
)

// unknownDisplay is the marker used for unestimated stories in serialized form.
const unknownDisplay = "?"

// AllPoints returns all valid point values, smallest first, unknown last.
func AllPoints() []Points {
	return []Points{
		Points1,
		Points2,
		Points3,
		Points5,
		Points8,
		Points13,
		Points21,
		PointsUnknown,
	}
}

// IsValid returns true if the value is on the point scale.
func (p Points) IsValid() bool {
	switch p {
	case PointsUnknown, Points1, Points2, Points3, Points5, Points8, Points13, Points21:
		return true
	default:
		return false
	}
}

// IsUnknown returns true if the story has not been estimated.
func (p Points) IsUnknown() bool {
	return p == PointsUnknown
}

// Value returns the numeric point value. Unknown counts as zero, which
// keeps unestimated stories out of point totals.
func (p Points) Value() int {
	return int(p)
}

// EffectiveValue returns the point value used for duration math.
// Unestimated stories are scheduled as a single point so they still
// appear on the timeline without dominating the projection.
func (p Points) EffectiveValue() int {
	if p.IsUnknown() {
		return 1
	}
	return int(p)
}

// SortKey returns the ordering key for scheduling. Unknown sorts after
// every estimated value.
func (p Points) SortKey() int {
	if p.IsUnknown() {
		return int(Points21) + 1
	}
	return int(p)
}

// Compare compares this point value to another by sort key.
// Returns -1 if p < other, 0 if equal, 1 if p > other.
func (p Points) Compare(other Points) int {
	switch {
	case p.SortKey() < other.SortKey():
		return -1
	case p.SortKey() > other.SortKey():
		return 1
	default:
		return 0
	}
}

// String returns the display form of the point value.
func (p Points) String() string {
	if p.IsUnknown() {
		return unknownDisplay
	}
	return strconv.Itoa(int(p))
}

// ParsePoints parses a display string ("?", "1", "5", ...) into Points.
func ParsePoints(s string) (Points, error) {
	if s == "" || s == unknownDisplay {
		return PointsUnknown, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return PointsUnknown, fmt.Errorf("invalid story points: %s", s)
	}
	p := Points(n)
	if !p.IsValid() {
		return PointsUnknown, fmt.Errorf("invalid story points: %s", s)
	}
	return p, nil
}

// MustParsePoints parses a point string, panicking on error. Use only in tests.
func MustParsePoints(s string) Points {
	p, err := ParsePoints(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalJSON implements json.Marshaler. Unknown serializes as "?" to match
// the form used by editor frontends; estimated values serialize as numbers.
func (p Points) MarshalJSON() ([]byte, error) {
	if p.IsUnknown() {
		return json.Marshal(unknownDisplay)
	}
	return json.Marshal(int(p))
}

// UnmarshalJSON implements json.Unmarshaler. Accepts a number, a numeric
// string, or "?".
func (p *Points) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		points := Points(n)
		if !points.IsValid() {
			return fmt.Errorf("invalid story points: %d", n)
		}
		*p = points
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	points, err := ParsePoints(s)
	if err != nil {
		return err
	}
	*p = points
	return nil
}
