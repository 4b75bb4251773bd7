package availability

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// HourRange is the daily window a doctor takes appointments in, both ends
// inclusive. Stored as "09:00-17:00".
type HourRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

func NewHourRange(start, end TimeOfDay) (HourRange, error) {
	if !start.Valid() || !end.Valid() {
		return HourRange{}, httperr.InvalidArgument("invalid_time")
	}
	if start > end {
		return HourRange{}, httperr.InvalidArgument("start_after_end")
	}
	return HourRange{Start: start, End: end}, nil
}

func ParseHourRange(s string) (HourRange, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return HourRange{}, httperr.InvalidArgument("invalid_hour_range")
	}
	start, err := ParseTimeOfDay(from)
	if err != nil {
		return HourRange{}, err
	}
	end, err := ParseTimeOfDay(to)
	if err != nil {
		return HourRange{}, err
	}
	return NewHourRange(start, end)
}

func (r HourRange) Contains(t TimeOfDay) bool {
	return t >= r.Start && t <= r.End
}

func (r HourRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

func (r HourRange) GormDataType() string {
	return "string"
}

func (r HourRange) Value() (driver.Value, error) {
	if _, err := NewHourRange(r.Start, r.End); err != nil {
		return nil, fmt.Errorf("invalid hour range %s: %w", r, err)
	}
	return r.String(), nil
}

func (r *HourRange) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into HourRange", src)
	}
	parsed, err := ParseHourRange(raw)
	if err != nil {
		return fmt.Errorf("scan hour range %q: %w", raw, err)
	}
	*r = parsed
	return nil
}

type hourRangeJSON struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

func (r HourRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(hourRangeJSON{Start: r.Start, End: r.End})
}

func (r *HourRange) UnmarshalJSON(b []byte) error {
	var v hourRangeJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := NewHourRange(v.Start, v.End)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
