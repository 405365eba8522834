// Package civildate converts between picker moments and date-only values
// stored as YYYY-MM-DD in a single civil timezone.
package civildate

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	// Embedded zone database so the civil zone loads on hosts without tzdata.
	_ "time/tzdata"
)

const (
	// DefaultZone is the practice's home jurisdiction.
	DefaultZone = "America/Sao_Paulo"

	// Layout is the storage format of a date-only value.
	Layout = "2006-01-02"
)

// Calendar interprets date-only values in one fixed civil timezone.
type Calendar struct {
	loc *time.Location
}

// New returns a Calendar for the named IANA zone.
func New(zone string) (*Calendar, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", zone, err)
	}
	return &Calendar{loc: loc}, nil
}

// MustNew is New that panics, for package-level defaults and tests.
func MustNew(zone string) *Calendar {
	c, err := New(zone)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCalendar atomic.Pointer[Calendar]

func init() {
	defaultCalendar.Store(MustNew(DefaultZone))
}

// Default returns the process calendar, America/Sao_Paulo unless SetDefault
// installed another one.
func Default() *Calendar {
	return defaultCalendar.Load()
}

// SetDefault installs the configured calendar used when decoding dates from
// JSON, query strings and filters.
func SetDefault(c *Calendar) {
	if c != nil {
		defaultCalendar.Store(c)
	}
}

// Location returns the civil zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// StorageDate returns the YYYY-MM-DD string for the calendar day of t as seen
// in t's own location. The hour of t never changes the result.
func (c *Calendar) StorageDate(t time.Time) string {
	return c.Anchor(t).Format(Layout)
}

// Anchor re-anchors the calendar day of t (in t's location) to midnight in
// the civil zone. Anchor(Anchor(t)) lands on the same day as Anchor(t).
func (c *Calendar) Anchor(t time.Time) time.Time {
	y, m, d := t.Date()
	return c.midnight(y, m, d)
}

// ParseStorageDate returns civil midnight of a stored YYYY-MM-DD day.
func (c *Calendar) ParseStorageDate(s string) (time.Time, error) {
	parsed, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	y, m, d := parsed.Date()
	return c.midnight(y, m, d), nil
}

// ParseInput turns a value sent by a client into its stored day. Accepted:
//   - YYYY-MM-DD, kept as is
//   - RFC 3339 with a non-zero offset: the day in that offset, per StorageDate
//   - RFC 3339 in UTC (what JSON.stringify sends) or a timestamp without
//     offset: the day in the civil zone
func (c *Calendar) ParseInput(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) == len(Layout) {
		return Parse(s)
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		if _, offset := t.Zone(); offset == 0 {
			t = t.In(c.loc)
		}
		return c.storageDay(t), nil
	}

	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return c.storageDay(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339 timestamp", s)
}

func (c *Calendar) storageDay(t time.Time) Date {
	return MustParse(c.StorageDate(t))
}

// Today returns the civil calendar day that contains the instant now.
func (c *Calendar) Today(now time.Time) Date {
	return DateOf(now.In(c.loc))
}

// Time returns civil midnight of d.
func (c *Calendar) Time(d Date) time.Time {
	return c.midnight(d.Year, d.Month, d.Day)
}

// midnight builds 00:00 of the given day in the civil zone. When a DST gap
// swallows midnight, time.Date moves forward to the first valid instant,
// which is still on the same day.
func (c *Calendar) midnight(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}
