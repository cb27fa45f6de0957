package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a calendar weekday name
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// weekdayNames is indexed by time.Weekday (Sunday = 0)
var weekdayNames = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// frenchWeekdays accepts the names stored by the legacy booking front-end
var frenchWeekdays = map[string]Weekday{
	"dimanche": Sunday,
	"lundi":    Monday,
	"mardi":    Tuesday,
	"mercredi": Wednesday,
	"jeudi":    Thursday,
	"vendredi": Friday,
	"samedi":   Saturday,
}

// WeekdayName maps a calendar date to its weekday name
func WeekdayName(date time.Time) Weekday {
	return weekdayNames[date.Weekday()]
}

// ParseWeekday accepts canonical names in any case and legacy French names
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, w := range weekdayNames {
		if string(w) == name {
			return w, nil
		}
	}
	if w, ok := frenchWeekdays[name]; ok {
		return w, nil
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrInvalidSchedule, s)
}

// Index returns the Sunday=0 position of the weekday, or -1
func (w Weekday) Index() int {
	for i, name := range weekdayNames {
		if name == w {
			return i
		}
	}
	return -1
}

// IsValid returns true for the seven canonical names
func (w Weekday) IsValid() bool {
	return w.Index() >= 0
}
