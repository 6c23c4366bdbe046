// Package codec converts timestamps between their native form and the
// representations a document may store them in: a formatted string or a count
// of seconds from an epoch.
package codec

import (
	"errors"
	"fmt"
	"time"
)

// Codec performs bidirectional conversion between the stored representation A
// and the domain representation B.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}

// ErrInvalidTime is returned when a stored representation cannot be read as a
// timestamp.
var ErrInvalidTime = errors.New("codec: invalid time")

// TimeString returns a Codec that formats and parses timestamps with layout.
// Encoded values are always rendered in UTC. Decoding falls back to RFC3339
// (with optional fractional seconds) when layout does not match.
func TimeString(layout string) Codec[string, time.Time] {
	return timeString{layout: layout}
}

type timeString struct{ layout string }

func (c timeString) Decode(s string) (time.Time, error) {
	t, err := time.Parse(c.layout, s)
	if err == nil {
		return t.UTC(), nil
	}
	if t2, err2 := parseRFC3339(s); err2 == nil {
		return t2.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q does not match %q: %v", ErrInvalidTime, s, c.layout, err)
}

func (c timeString) Encode(t time.Time) (string, error) {
	return t.UTC().Format(c.layout), nil
}

// TimeUnix returns a Codec between whole seconds elapsed since epoch and
// timestamps. Encoding truncates sub-second precision.
func TimeUnix(epoch time.Time) Codec[int64, time.Time] {
	return timeUnix{epoch: epoch.UTC()}
}

type timeUnix struct{ epoch time.Time }

func (c timeUnix) Decode(n int64) (time.Time, error) {
	return time.Unix(c.epoch.Unix()+n, int64(c.epoch.Nanosecond())).UTC(), nil
}

func (c timeUnix) Encode(t time.Time) (int64, error) {
	secs := t.UTC().Unix() - c.epoch.Unix()
	return secs, nil
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
