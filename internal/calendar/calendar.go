package calendar

import (
	"errors"

	"github.com/username/calendarweek/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShortened:
		return "shortened"
	}
	return ""
}

// ErrDayNotFound is returned by sources that have no entry for the requested day
var ErrDayNotFound = errors.New("day not found in calendar")

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         dateutil.Date
	Type         DayType
	WorkingHours int
	IsWorkday    bool
	Note         string
}

// Calendar classifies days for the year grid
type Calendar interface {
	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date dateutil.Date) (*DayInfo, error)
}

// WeekendCalendar classifies Saturday and Sunday as weekend and every other day as a workday
type WeekendCalendar struct {
	hoursPerDay int
}

// NewWeekendCalendar creates a calendar with a plain Monday-Friday working week
func NewWeekendCalendar(hoursPerDay int) *WeekendCalendar {
	return &WeekendCalendar{hoursPerDay: hoursPerDay}
}

// GetDayInfo never fails
func (wc *WeekendCalendar) GetDayInfo(date dateutil.Date) (*DayInfo, error) {
	if dateutil.IsWeekend(date.Weekday()) {
		return &DayInfo{Date: date, Type: DayTypeWeekend}, nil
	}
	return &DayInfo{
		Date:         date,
		Type:         DayTypeWorkday,
		WorkingHours: wc.hoursPerDay,
		IsWorkday:    true,
	}, nil
}
