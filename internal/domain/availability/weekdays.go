package availability

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// WeekdaySet is a set of days a doctor sees patients. Stored as the
// comma-separated abbreviations "Mon,Tue,Wed".
type WeekdaySet uint8

// calendar order used for display and storage
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

var abbrev = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

const Weekdays = WeekdaySet(1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday)

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << d
	}
	return s
}

// ParseWeekdays reads "Mon,Tue,Wed". Matching is case-insensitive and
// accepts full names; duplicates collapse.
func ParseWeekdays(s string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, ok := lookupWeekday(part)
		if !ok {
			return 0, httperr.InvalidArgument("invalid_weekday")
		}
		set |= 1 << d
	}
	if set.Empty() {
		return 0, httperr.InvalidArgument("no_available_days")
	}
	return set, nil
}

func lookupWeekday(s string) (time.Weekday, bool) {
	for d, a := range abbrev {
		if strings.EqualFold(s, a) || strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<d) != 0
}

func (s WeekdaySet) Empty() bool {
	return s == 0
}

// Days lists the members Monday first.
func (s WeekdaySet) Days() []time.Weekday {
	var out []time.Weekday
	for _, d := range weekOrder {
		if s.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s WeekdaySet) Abbrevs() []string {
	days := s.Days()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, abbrev[d])
	}
	return out
}

func (s WeekdaySet) String() string {
	return strings.Join(s.Abbrevs(), ",")
}

func (s WeekdaySet) GormDataType() string {
	return "string"
}

func (s WeekdaySet) Value() (driver.Value, error) {
	if s.Empty() {
		return nil, fmt.Errorf("empty weekday set")
	}
	return s.String(), nil
}

func (s *WeekdaySet) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into WeekdaySet", src)
	}
	parsed, err := ParseWeekdays(raw)
	if err != nil {
		return fmt.Errorf("scan weekdays %q: %w", raw, err)
	}
	*s = parsed
	return nil
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Abbrevs())
}

func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var days []string
	if err := json.Unmarshal(b, &days); err != nil {
		return err
	}
	parsed, err := ParseWeekdays(strings.Join(days, ","))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
