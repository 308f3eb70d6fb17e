// Package billing holds the pure arithmetic of tuition billing: lesson calendars,
// fee proration, currency rounding and charge status derivation.
package billing

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPattern is returned for a days pattern other than ODD or EVEN
var ErrUnknownPattern = errors.New("unknown days pattern")

// ErrInvalidMonth is returned for a month outside 1..12
var ErrInvalidMonth = errors.New("invalid month")

const (
	PatternOdd  = "ODD"
	PatternEven = "EVEN"
)

// LessonCount is the result of scanning one month of a group's calendar
type LessonCount struct {
	Planned int `json:"planned"`
	Charged int `json:"charged"`
}

// Weekdays returns the lesson weekdays for a pattern
func Weekdays(pattern string) ([]time.Weekday, error) {
	switch pattern {
	case PatternOdd:
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}, nil
	case PatternEven:
		return []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}
}

// LessonDates lists every lesson day of the month in calendar order
func LessonDates(pattern string, year, month int) ([]time.Time, error) {
	days, err := Weekdays(pattern)
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	var dates []time.Time
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		if isLessonDay(days, d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// CountLessons counts the month's lesson days (Planned) and those falling on or after
// the join date (Charged). Only the calendar date of joinDate matters.
func CountLessons(pattern string, year, month int, joinDate time.Time) (LessonCount, error) {
	dates, err := LessonDates(pattern, year, month)
	if err != nil {
		return LessonCount{}, err
	}

	join := DateOnly(joinDate)
	count := LessonCount{Planned: len(dates)}
	for _, d := range dates {
		if !d.Before(join) {
			count.Charged++
		}
	}
	return count, nil
}

// DateOnly drops the clock and zone from t, keeping its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLessonDay(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
