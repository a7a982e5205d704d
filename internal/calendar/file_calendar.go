package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/username/calendarweek/pkg/dateutil"
	"go.uber.org/zap"
)

// FileCalendar implements Calendar using a local text file of day overrides.
//
// Format, one day per line, '#' starts a comment:
//
//	YYYY-MM-DD type working_hours [note]
//	2025-01-01 holiday 0 New Year's Day
//
// type is one of workday, weekend, holiday, shortened.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	data     map[dateutil.Date]*DayInfo
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[dateutil.Date]*DayInfo),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		info, err := parseDayLine(line)
		if err != nil {
			fc.logger.Warn("Skipping calendar line",
				zap.Int("line", lineNo),
				zap.String("text", line),
				zap.Error(err))
			continue
		}
		fc.data[info.Date] = info
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", len(fc.data)))

	return nil
}

func parseDayLine(line string) (*DayInfo, error) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return nil, fmt.Errorf("expected 'date type hours [note]'")
	}

	date, err := dateutil.ParseDate(parts[0])
	if err != nil {
		return nil, err
	}

	hours, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid working hours %q: %w", parts[2], err)
	}

	info := &DayInfo{
		Date:         date,
		WorkingHours: hours,
		Note:         strings.Join(parts[3:], " "),
	}
	switch parts[1] {
	case "workday":
		info.Type = DayTypeWorkday
		info.IsWorkday = true
	case "weekend":
		info.Type = DayTypeWeekend
	case "holiday":
		info.Type = DayTypeHoliday
	case "shortened":
		info.Type = DayTypeShortened
		info.IsWorkday = true
	default:
		return nil, fmt.Errorf("unknown day type %q", parts[1])
	}
	return info, nil
}

// GetDayInfo returns the override for the day, or ErrDayNotFound
func (fc *FileCalendar) GetDayInfo(date dateutil.Date) (*DayInfo, error) {
	info, ok := fc.data[date]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDayNotFound, date)
	}
	return info, nil
}

// Len returns the number of loaded days
func (fc *FileCalendar) Len() int {
	return len(fc.data)
}
