package service

import (
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
)

// Clock answers "what day is it" in the practice's civil timezone.
type Clock struct {
	cal *civildate.Calendar
	now func() time.Time
}

func NewClock(cal *civildate.Calendar) *Clock {
	if cal == nil {
		cal = civildate.Default()
	}
	return &Clock{cal: cal, now: time.Now}
}

// FixedClock always reports the civil day containing at.
func FixedClock(cal *civildate.Calendar, at time.Time) *Clock {
	c := NewClock(cal)
	c.now = func() time.Time { return at }
	return c
}

func (c *Clock) Today() civildate.Date {
	return c.cal.Today(c.now())
}

func (c *Clock) Calendar() *civildate.Calendar {
	return c.cal
}

// Instant returns civil midnight of d in UTC, for filtering timestamp
// columns by civil day.
func (c *Clock) Instant(d civildate.Date) time.Time {
	return c.cal.Time(d).UTC()
}
