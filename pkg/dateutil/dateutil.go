package dateutil

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinYear = 1
	MaxYear = 9999
)

// ErrInvalidDate is returned when a year/month/day triple is not a real calendar date
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date without time or location
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates and builds a Date.
// time.Date silently normalizes overflow (Feb 30 -> Mar 2), so the round trip is checked.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: year %d out of range %d..%d", ErrInvalidDate, year, MinYear, MaxYear)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysIn(year, month) {
		return Date{}, fmt.Errorf("%w: day %d in %d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromTime returns the calendar date of t in t's location
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns midnight UTC of the date
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// ISOWeek returns the ISO 8601 week-year and week number of the date
func (d Date) ISOWeek() (isoYear, week int) {
	return d.Time().ISOWeek()
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days later (or earlier for negative n)
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Equal reports whether two dates are the same day
func (d Date) Equal(other Date) bool {
	return d == other
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ISOWeek returns the ISO 8601 week-year and week number for the given date.
// Week 1 is the week containing the year's first Thursday; weeks run Monday-Sunday.
func ISOWeek(date Date) (isoYear int, week int) {
	return date.ISOWeek()
}

// GetWeekNumber returns the ISO week number for the given time
func GetWeekNumber(date time.Time) (year int, week int) {
	year, week = date.ISOWeek()
	return
}

// FormatWeek formats an ISO week as "2024-W01"
func FormatWeek(isoYear, week int) string {
	return fmt.Sprintf("%04d-W%02d", isoYear, week)
}

// WeeksInYear returns 52 or 53, the number of ISO weeks in the ISO year.
// December 28 always falls in the last ISO week of its year.
func WeeksInYear(isoYear int) int {
	_, week := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// DaysIn returns the number of days in the month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayIndex maps a weekday to its column in a Monday-first week (Monday=0 .. Sunday=6)
func MondayIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfWeek returns the Monday of the week for the given date
func StartOfWeek(date time.Time) time.Time {
	return StartOfDay(date.AddDate(0, 0, -MondayIndex(date.Weekday())))
}

// EndOfWeek returns the Sunday of the week for the given date (start of day)
func EndOfWeek(date time.Time) time.Time {
	return StartOfWeek(date).AddDate(0, 0, 6)
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(weekday time.Weekday) bool {
	return weekday == time.Saturday || weekday == time.Sunday
}

// ParseDate parses a date string in one of the accepted layouts
func ParseDate(dateStr string) (Date, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006/01/02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day())
		}
	}

	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
}

// Today returns today's date in the local time zone
func Today() Date {
	return FromTime(time.Now())
}
