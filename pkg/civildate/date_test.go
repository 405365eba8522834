package civildate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2025-06-20", Date{2025, time.June, 20}},
		{"2025-06-20T23:00:00-08:00", Date{2025, time.June, 20}},
		{"2025-06-21T02:00:00+09:00", Date{2025, time.June, 21}},
		// UTC instants are read in the civil zone (UTC-3)
		{"2025-06-20T00:00:00Z", Date{2025, time.June, 19}},
		{"2025-06-21T01:00:00Z", Date{2025, time.June, 20}},
		{"2025-06-21T01:00:00.000Z", Date{2025, time.June, 20}},
		{"2025-06-20T15:00:00+00:00", Date{2025, time.June, 20}},
		{"2025-06-20T22:00:00", Date{2025, time.June, 20}},
	}
	for _, tt := range tests {
		got, err := ParseInput(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseInput("20/06/2025")
	assert.Error(t, err)
}

func TestEveningPickSentAsUTC(t *testing.T) {
	saoPaulo := mustZone(t, DefaultZone)
	picked := time.Date(2025, time.June, 20, 22, 0, 0, 0, saoPaulo)

	wire, err := json.Marshal(picked.UTC())
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-21T01:00:00Z"`, string(wire))

	var stored Date
	require.NoError(t, json.Unmarshal(wire, &stored))
	assert.Equal(t, Date{2025, time.June, 20}, stored)
	assert.Equal(t, Default().StorageDate(picked), stored.String())
}

func TestParseInputUsesCalendarZone(t *testing.T) {
	tokyo := MustNew("Asia/Tokyo")
	got, err := tokyo.ParseInput("2025-06-20T16:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, Date{2025, time.June, 21}, got)

	got, err = Default().ParseInput("2025-06-20T16:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, Date{2025, time.June, 20}, got)
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	SetDefault(MustNew("Asia/Tokyo"))
	got, err := ParseInput("2025-06-20T16:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, Date{2025, time.June, 21}, got)

	SetDefault(nil)
	assert.Equal(t, "Asia/Tokyo", Default().Location().String())
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Due  Date  `json:"due"`
		Paid *Date `json:"paid"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2025-06-20T23:00:00-03:00","paid":null}`), &payload))
	assert.Equal(t, Date{2025, time.June, 20}, payload.Due)
	assert.Nil(t, payload.Paid)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2025-06-20","paid":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"due":20250620}`), &payload))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-02-29"))
	assert.Equal(t, Date{2024, time.February, 29}, d)

	require.NoError(t, d.Scan([]byte("2024-03-01")))
	assert.Equal(t, Date{2024, time.March, 1}, d)

	require.NoError(t, d.Scan(time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Date{2024, time.April, 2}, d)

	require.NoError(t, d.Scan("2024-05-03 00:00:00+00:00"))
	assert.Equal(t, Date{2024, time.May, 3}, d)

	assert.Error(t, d.Scan(42))

	v, err := Date{2024, time.May, 3}.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", v)
}

func TestDateArithmetic(t *testing.T) {
	d := Date{2025, time.January, 31}
	assert.Equal(t, Date{2025, time.February, 1}, d.AddDays(1))
	assert.Equal(t, Date{2025, time.January, 1}, d.AddDays(-30))
	assert.Equal(t, Date{2025, time.January, 1}, d.FirstOfMonth())
	assert.Equal(t, Date{2024, time.February, 29}, Date{2024, time.February, 10}.LastOfMonth())

	assert.True(t, Date{2025, time.June, 19}.Before(Date{2025, time.June, 20}))
	assert.False(t, Date{2025, time.June, 20}.Before(Date{2025, time.June, 20}))
	assert.True(t, Date{2025, time.June, 21}.After(Date{2025, time.June, 20}))
	assert.True(t, Date{}.IsZero())
}
