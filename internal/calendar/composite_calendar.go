package calendar

import (
	"errors"
	"fmt"

	"github.com/username/calendarweek/pkg/dateutil"
	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar with fallback strategy
// Primary: FileCalendar (user overrides)
// Fallback: WeekendCalendar (plain Monday-Friday week)
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// GetDayInfo returns detailed info for a specific day
func (cc *CompositeCalendar) GetDayInfo(date dateutil.Date) (*DayInfo, error) {
	dayInfo, err := cc.primary.GetDayInfo(date)
	if err == nil {
		return dayInfo, nil
	}

	// A missing override is the common case; anything else is worth a log line.
	if !errors.Is(err, ErrDayNotFound) {
		cc.logger.Warn("Primary calendar failed, falling back",
			zap.Stringer("date", date),
			zap.Error(err))
	}

	return cc.fallback.GetDayInfo(date)
}

// LoadPrimary loads the primary calendar (if FileCalendar)
func (cc *CompositeCalendar) LoadPrimary() error {
	if fc, ok := cc.primary.(*FileCalendar); ok {
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load day overrides: %w", err)
		}
	}
	return nil
}

// New builds the calendar used by the grid: overrides from holidaysFile when set,
// on top of the weekend rule. A file that fails to load is logged and ignored.
func New(holidaysFile string, logger *zap.Logger) Calendar {
	weekend := NewWeekendCalendar(8)
	if holidaysFile == "" {
		return weekend
	}

	composite := NewCompositeCalendar(NewFileCalendar(holidaysFile, logger), weekend, logger)
	if err := composite.LoadPrimary(); err != nil {
		logger.Warn("Failed to load holidays file, continuing with weekends only",
			zap.String("file", holidaysFile),
			zap.Error(err))
		return weekend
	}
	return composite
}
