package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Schedule identifies one appointment slot: a calendar date plus a
// time of day, both in canonical text form so the value is comparable and
// sorts chronologically. Build it with NewSchedule.
type Schedule struct {
	Date string `json:"date" bson:"date"`
	Time string `json:"time" bson:"time"`
}

// NewSchedule parses an ISO-8601 calendar date and a 24-hour HH:MM time.
// Seconds are accepted only when zero ("10:00:00").
func NewSchedule(date, clock string) (Schedule, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return Schedule{}, fmt.Errorf("date and time are required")
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	t, err := parseClock(clock)
	if err != nil {
		return Schedule{}, err
	}

	return Schedule{
		Date: d.Format(DateLayout),
		Time: t.Format(TimeLayout),
	}, nil
}

func parseClock(clock string) (time.Time, error) {
	if t, err := time.Parse(TimeLayout, clock); err == nil {
		return t, nil
	}
	if t, err := time.Parse("15:04:05", clock); err == nil && t.Second() == 0 {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM (24-hour)", clock)
}

// At returns the instant the slot starts in loc.
func (s Schedule) At(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, s.String(), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Before reports whether the slot starts strictly before now.
func (s Schedule) Before(now time.Time) bool {
	return s.At(now.Location()).Before(now)
}

func (s Schedule) IsZero() bool {
	return s.Date == "" && s.Time == ""
}

func (s Schedule) String() string {
	return s.Date + " " + s.Time
}
