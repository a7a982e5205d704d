package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/calendarweek/pkg/dateutil"
	"go.uber.org/zap"
)

// ErrYearOutOfRange is returned for years the grid cannot represent
var ErrYearOutOfRange = errors.New("year out of range")

// WeekLabel selects which day of a row decides the row's ISO week number
type WeekLabel int

const (
	// WeekLabelLast labels a row with the week of its last valid day
	WeekLabelLast WeekLabel = iota
	// WeekLabelFirst labels a row with the week of its first valid day
	WeekLabelFirst
)

// ParseWeekLabel parses "last" or "first"; empty means last
func ParseWeekLabel(s string) (WeekLabel, error) {
	switch s {
	case "", "last":
		return WeekLabelLast, nil
	case "first":
		return WeekLabelFirst, nil
	}
	return WeekLabelLast, fmt.Errorf("unknown week label %q (want 'last' or 'first')", s)
}

func (l WeekLabel) String() string {
	if l == WeekLabelFirst {
		return "first"
	}
	return "last"
}

// Cell is one day slot of a week row. Day is 0 for padding cells.
type Cell struct {
	Day   int
	Today bool
	Type  DayType
	Note  string
}

// Blank reports whether the cell is padding outside the month
func (c Cell) Blank() bool {
	return c.Day == 0
}

// Week is a Monday-first row of seven cells
type Week struct {
	ISOYear int
	Number  int
	Days    [7]Cell
}

// Month is one month of the grid
type Month struct {
	Month    time.Month
	Weeks    []Week
	HasToday bool
}

// Grid is the full-year calendar layout
type Grid struct {
	Year   int
	Today  dateutil.Date
	Label  WeekLabel
	Months []Month
}

// Builder lays out year grids
type Builder struct {
	calendar Calendar
	label    WeekLabel
	now      func() time.Time
	logger   *zap.Logger
}

// NewBuilder creates a grid builder. cal may be nil, in which case only weekends are marked.
func NewBuilder(cal Calendar, label WeekLabel, logger *zap.Logger) *Builder {
	if cal == nil {
		cal = NewWeekendCalendar(8)
	}
	return &Builder{
		calendar: cal,
		label:    label,
		now:      time.Now,
		logger:   logger,
	}
}

// SetClock replaces the source of "today"
func (b *Builder) SetClock(now func() time.Time) {
	b.now = now
}

// BuildYear builds the grid for year with today's date from the system clock
func BuildYear(year int) (*Grid, error) {
	return NewBuilder(nil, WeekLabelLast, zap.NewNop()).BuildYear(year)
}

// BuildYear lays out all twelve months of year
func (b *Builder) BuildYear(year int) (*Grid, error) {
	if year < dateutil.MinYear || year > dateutil.MaxYear {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrYearOutOfRange, year, dateutil.MinYear, dateutil.MaxYear)
	}

	today := dateutil.FromTime(b.now())
	grid := &Grid{
		Year:   year,
		Today:  today,
		Label:  b.label,
		Months: make([]Month, 0, 12),
	}
	for m := time.January; m <= time.December; m++ {
		grid.Months = append(grid.Months, b.buildMonth(year, m, today))
	}

	b.logger.Debug("Year grid built",
		zap.Int("year", year),
		zap.Stringer("today", today),
		zap.Stringer("week_label", b.label))

	return grid, nil
}

func (b *Builder) buildMonth(year int, month time.Month, today dateutil.Date) Month {
	out := Month{Month: month}
	days := dateutil.DaysIn(year, month)
	col := dateutil.MondayIndex(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())

	var row Week
	for day := 1; day <= days; day++ {
		date := dateutil.Date{Year: year, Month: month, Day: day}
		cell := b.cell(date)
		if date == today {
			cell.Today = true
			out.HasToday = true
		}
		row.Days[col] = cell

		if b.label == WeekLabelLast || row.Number == 0 {
			row.ISOYear, row.Number = date.ISOWeek()
		}

		col++
		if col == 7 || day == days {
			out.Weeks = append(out.Weeks, row)
			row = Week{}
			col = 0
		}
	}
	return out
}

func (b *Builder) cell(date dateutil.Date) Cell {
	cell := Cell{Day: date.Day}
	info, err := b.calendar.GetDayInfo(date)
	if err != nil {
		b.logger.Debug("No day info", zap.Stringer("date", date), zap.Error(err))
		if dateutil.IsWeekend(date.Weekday()) {
			cell.Type = DayTypeWeekend
		} else {
			cell.Type = DayTypeWorkday
		}
		return cell
	}
	cell.Type = info.Type
	cell.Note = info.Note
	return cell
}

// TodayCount returns how many cells are flagged as today
func (g *Grid) TodayCount() int {
	n := 0
	for _, m := range g.Months {
		for _, w := range m.Weeks {
			for _, c := range w.Days {
				if c.Today {
					n++
				}
			}
		}
	}
	return n
}
