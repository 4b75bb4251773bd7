package availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdays(t *testing.T) {
	set, err := ParseWeekdays("Mon, tue,WED,Monday")
	require.NoError(t, err)

	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, set.Days())
	assert.Equal(t, "Mon,Tue,Wed", set.String())
	assert.False(t, set.Contains(time.Sunday))

	_, err = ParseWeekdays("Mon,Funday")
	assert.Error(t, err)

	_, err = ParseWeekdays(" , ")
	assert.Error(t, err)
}

func TestWeekdaySet_ScanValue(t *testing.T) {
	var set WeekdaySet
	require.NoError(t, set.Scan([]byte("Sat,Sun")))
	assert.Equal(t, NewWeekdaySet(time.Saturday, time.Sunday), set)

	v, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, "Sat,Sun", v)

	_, err = WeekdaySet(0).Value()
	assert.Error(t, err)
}

func TestParseHourRange(t *testing.T) {
	r, err := ParseHourRange("09:00-17:00")
	require.NoError(t, err)
	assert.Equal(t, MustTimeOfDay("09:00"), r.Start)
	assert.Equal(t, MustTimeOfDay("17:00"), r.End)
	assert.True(t, r.Contains(MustTimeOfDay("17:00")))
	assert.False(t, r.Contains(MustTimeOfDay("17:01")))

	for _, bad := range []string{"", "09:00", "17:00-09:00", "9am-5pm", "09:00-25:00"} {
		_, err := ParseHourRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("14:30:00"))
	assert.Equal(t, "14:30", tod.String())

	require.NoError(t, tod.Scan([]byte("08:15:00.000000")))
	assert.Equal(t, "08:15", tod.String())

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 23, 45, 0, 0, time.UTC)))
	assert.Equal(t, "23:45", tod.String())

	require.NoError(t, tod.Scan(int64(9*60*60*1_000_000)))
	assert.Equal(t, "09:00", tod.String())

	assert.Error(t, tod.Scan(3.14))

	v, err := MustTimeOfDay("07:05").Value()
	require.NoError(t, err)
	assert.Equal(t, "07:05:00", v)
}

func TestParseTimeOfDay_Rejects(t *testing.T) {
	for _, bad := range []string{"24:00", "12:60", "noon", "12:00:30"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestDescriptorJSON(t *testing.T) {
	type doc struct {
		Days  WeekdaySet `json:"days"`
		Hours HourRange  `json:"hours"`
		At    TimeOfDay  `json:"at"`
	}

	in := doc{
		Days:  NewWeekdaySet(time.Tuesday, time.Thursday),
		Hours: HourRange{Start: MustTimeOfDay("09:00"), End: MustTimeOfDay("15:00")},
		At:    MustTimeOfDay("10:30"),
	}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"days":["Tue","Thu"],"hours":{"start":"09:00","end":"15:00"},"at":"10:30"}`, string(b))

	var out doc
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	d := DateOnly(time.Date(2026, 10, 12, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), d)
}
