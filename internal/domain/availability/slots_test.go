package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func strs(ts []TimeOfDay) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.String())
	}
	return out
}

func TestGenerateSlots_FullDay(t *testing.T) {
	slots, err := GenerateSlots(MustTimeOfDay("09:00"), MustTimeOfDay("17:00"), 30)
	require.NoError(t, err)

	require.Len(t, slots, 17)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "09:30", slots[1].String())
	assert.Equal(t, "17:00", slots[16].String())
}

func TestGenerateSlots_NoOvershoot(t *testing.T) {
	slots, err := GenerateSlots(MustTimeOfDay("09:00"), MustTimeOfDay("09:15"), 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, strs(slots))

	slots, err = GenerateSlots(MustTimeOfDay("10:00"), MustTimeOfDay("11:40"), 45)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:45"}, strs(slots))
}

func TestGenerateSlots_SinglePoint(t *testing.T) {
	slots, err := GenerateSlots(MustTimeOfDay("12:00"), MustTimeOfDay("12:00"), 15)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00"}, strs(slots))
}

func TestGenerateSlots_InvalidArguments(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		step  int
		code  string
	}{
		{"zero step", "09:00", "17:00", 0, "invalid_step"},
		{"negative step", "09:00", "17:00", -30, "invalid_step"},
		{"start after end", "17:00", "09:00", 30, "start_after_end"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateSlots(MustTimeOfDay(tc.start), MustTimeOfDay(tc.end), tc.step)
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, httperr.KindInvalidArgument))
			assert.Equal(t, tc.code, httperr.CodeOf(err))
		})
	}
}

func TestSlots_Restartable(t *testing.T) {
	seq, err := Slots(MustTimeOfDay("08:00"), MustTimeOfDay("09:00"), 20)
	require.NoError(t, err)

	var first, second []TimeOfDay
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}

	assert.Equal(t, []string{"08:00", "08:20", "08:40", "09:00"}, strs(first))
	assert.Equal(t, first, second)
}

func TestSlots_EarlyBreak(t *testing.T) {
	seq, err := Slots(MustTimeOfDay("08:00"), MustTimeOfDay("18:00"), 30)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestDescriptor_SlotsOn(t *testing.T) {
	d, err := ParseDescriptor("Mon,Wed,Fri", "10:00-11:00")
	require.NoError(t, err)

	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	slots, err := d.SlotsOn(monday, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, strs(slots))

	slots, err = d.SlotsOn(tuesday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDescriptor_Allows(t *testing.T) {
	d, err := ParseDescriptor("Mon,Tue,Wed,Thu,Fri", "09:00-17:00")
	require.NoError(t, err)

	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	sunday := monday.AddDate(0, 0, 6)

	assert.NoError(t, d.Allows(monday, MustTimeOfDay("09:00"), 30))
	assert.NoError(t, d.Allows(monday, MustTimeOfDay("17:00"), 30))

	cases := map[string]struct {
		date time.Time
		at   string
		code string
	}{
		"weekend":      {sunday, "10:00", "doctor_unavailable_on_day"},
		"before hours": {monday, "08:30", "outside_available_hours"},
		"after hours":  {monday, "17:30", "outside_available_hours"},
		"off boundary": {monday, "09:10", "not_a_slot_boundary"},
		"quarter slot": {monday, "09:45", "not_a_slot_boundary"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := d.Allows(tc.date, MustTimeOfDay(tc.at), 30)
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, httperr.KindInvalidArgument))
			assert.Equal(t, tc.code, httperr.CodeOf(err))
		})
	}
}
