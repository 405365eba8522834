package civildate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestRoundTripEveryHour(t *testing.T) {
	cal := Default()

	days := []struct {
		name string
		zone string
		date Date
	}{
		// New York springs forward at 02:00 on 2025-03-09.
		{"viewer dst transition", "America/New_York", Date{2025, time.March, 9}},
		// Sao Paulo's last DST start swallowed midnight on 2018-11-04.
		{"civil zone dst transition", DefaultZone, Date{2018, time.November, 4}},
		{"viewer ordinary day", "America/Los_Angeles", Date{2025, time.June, 20}},
		{"east of civil zone", "Asia/Tokyo", Date{2025, time.January, 31}},
	}

	for _, tc := range days {
		t.Run(tc.name, func(t *testing.T) {
			loc := mustZone(t, tc.zone)
			for hour := 0; hour < 24; hour++ {
				m := time.Date(tc.date.Year, tc.date.Month, tc.date.Day, hour, 30, 0, 0, loc)
				stored := cal.StorageDate(m)

				back, err := cal.ParseStorageDate(stored)
				require.NoError(t, err)

				y, mo, d := m.Date()
				by, bmo, bd := back.Date()
				assert.Equal(t, []int{y, int(mo), d}, []int{by, int(bmo), bd}, "hour %d", hour)
			}
		})
	}
}

func TestStorageDateIgnoresTimeOfDay(t *testing.T) {
	cal := Default()
	loc := mustZone(t, "America/Denver")

	for minute := 0; minute < 24*60; minute += 7 {
		m := time.Date(2025, time.October, 5, 0, minute, 0, 0, loc)
		assert.Equal(t, "2025-10-05", cal.StorageDate(m), "minute %d", minute)
	}
	assert.Equal(t, "2025-10-05", cal.StorageDate(time.Date(2025, time.October, 5, 23, 59, 59, 0, loc)))
}

func TestAnchorIsIdempotent(t *testing.T) {
	cal := Default()
	loc := mustZone(t, "Pacific/Honolulu")

	picked := time.Date(2025, time.December, 31, 22, 15, 0, 0, loc)
	once := cal.Anchor(picked)
	twice := cal.Anchor(once)

	assert.True(t, once.Equal(twice))
	assert.Equal(t, DateOf(once), DateOf(twice))
	assert.Equal(t, Date{2025, time.December, 31}, DateOf(once))
	assert.Equal(t, cal.Location(), once.Location())
}

func TestAnchorHandlesMissingMidnight(t *testing.T) {
	cal := Default()
	anchored := cal.Anchor(time.Date(2018, time.November, 4, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, Date{2018, time.November, 4}, DateOf(anchored))
	assert.Equal(t, "2018-11-04", cal.StorageDate(anchored))
}

func TestLateEveningWestOfCivilZone(t *testing.T) {
	cal := Default()
	pacific := mustZone(t, "America/Los_Angeles")

	picked := time.Date(2025, time.June, 20, 23, 0, 0, 0, pacific)
	assert.Equal(t, "2025-06-20", cal.StorageDate(picked))
}

func TestStoredDateRendersSameDayEverywhere(t *testing.T) {
	cal := Default()
	back, err := cal.ParseStorageDate("2025-07-01")
	require.NoError(t, err)

	assert.Equal(t, "2025-07-01", cal.StorageDate(back))
	assert.Equal(t, Date{2025, time.July, 1}, DateOf(back.In(cal.Location())))

	wire, err := json.Marshal(MustParse("2025-07-01"))
	require.NoError(t, err)

	for _, zone := range []string{"UTC", "America/New_York", "Europe/Lisbon", "Asia/Kolkata", "Pacific/Kiritimati"} {
		loc := mustZone(t, zone)

		// The API hands out the day itself, never an instant.
		var shown Date
		require.NoError(t, json.Unmarshal(wire, &shown), zone)
		assert.Equal(t, Date{2025, time.July, 1}, shown, zone)

		// The viewer's widget highlights that day at local midnight, which
		// stores back unchanged.
		highlighted := time.Date(shown.Year, shown.Month, shown.Day, 0, 0, 0, 0, loc)
		assert.Equal(t, 1, highlighted.Day(), zone)
		assert.Equal(t, "2025-07-01", cal.StorageDate(highlighted), zone)

		// Anchored to civil midnight, the moment is still July 1 in the civil zone.
		assert.True(t, back.Equal(cal.Anchor(highlighted)), zone)
	}
}

func TestParseStorageDateRejectsMalformed(t *testing.T) {
	cal := Default()
	for _, in := range []string{"", "2025-13-01", "01/07/2025", "2025-7-1"} {
		_, err := cal.ParseStorageDate(in)
		assert.Error(t, err, in)
	}
}

func TestToday(t *testing.T) {
	cal := Default()
	// 01:30 UTC is still the previous evening in Sao Paulo (UTC-3).
	now := time.Date(2025, time.March, 2, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, Date{2025, time.March, 1}, cal.Today(now))
}

func TestNewRejectsUnknownZone(t *testing.T) {
	_, err := New("Mars/Olympus_Mons")
	assert.Error(t, err)

	cal, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultZone, cal.Location().String())
}
