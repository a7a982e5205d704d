package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/username/calendarweek/pkg/dateutil"
	"go.uber.org/zap"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 15, 4, 5, 0, time.Local)
	}
}

func newTestBuilder(label WeekLabel, year int, month time.Month, day int) *Builder {
	b := NewBuilder(nil, label, zap.NewNop())
	b.SetClock(fixedClock(year, month, day))
	return b
}

func TestBuildYear_EveryDayOnce(t *testing.T) {
	b := newTestBuilder(WeekLabelLast, 2024, time.June, 1)

	for _, year := range []int{1, 1900, 2000, 2020, 2021, 2023, 2024, 2100, 9999} {
		grid, err := b.BuildYear(year)
		if err != nil {
			t.Fatalf("BuildYear(%d) error = %v", year, err)
		}
		if len(grid.Months) != 12 {
			t.Fatalf("BuildYear(%d) months = %d, want 12", year, len(grid.Months))
		}

		for i, m := range grid.Months {
			if m.Month != time.Month(i+1) {
				t.Errorf("%d: month[%d] = %v", year, i, m.Month)
			}
			seen := make(map[int]int)
			for _, w := range m.Weeks {
				for _, c := range w.Days {
					if !c.Blank() {
						seen[c.Day]++
					}
				}
			}
			want := dateutil.DaysIn(year, m.Month)
			if len(seen) != want {
				t.Errorf("%d-%02d: %d distinct days, want %d", year, m.Month, len(seen), want)
			}
			for day := 1; day <= want; day++ {
				if seen[day] != 1 {
					t.Errorf("%d-%02d-%02d appears %d times", year, m.Month, day, seen[day])
				}
			}
		}
	}
}

func TestBuildYear_MondayAlignment(t *testing.T) {
	b := newTestBuilder(WeekLabelLast, 2024, time.June, 1)
	grid, err := b.BuildYear(2024)
	if err != nil {
		t.Fatalf("BuildYear() error = %v", err)
	}

	for _, m := range grid.Months {
		for _, w := range m.Weeks {
			for col, c := range w.Days {
				if c.Blank() {
					continue
				}
				weekday := time.Date(2024, m.Month, c.Day, 0, 0, 0, 0, time.UTC).Weekday()
				if dateutil.MondayIndex(weekday) != col {
					t.Errorf("2024-%02d-%02d (%v) in column %d", m.Month, c.Day, weekday, col)
				}
			}
		}
	}

	// September 2024 starts on a Sunday: six padding cells then day 1.
	sept := grid.Months[time.September-1]
	first := sept.Weeks[0]
	for col := 0; col < 6; col++ {
		if !first.Days[col].Blank() {
			t.Errorf("September 2024 row 0 col %d = %d, want blank", col, first.Days[col].Day)
		}
	}
	if first.Days[6].Day != 1 {
		t.Errorf("September 2024 row 0 Sunday = %d, want 1", first.Days[6].Day)
	}
	if len(sept.Weeks) != 6 {
		t.Errorf("September 2024 rows = %d, want 6", len(sept.Weeks))
	}
}

func TestBuildYear_TodayFlag(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		wantCount int
	}{
		{"year containing today", 2024, 1},
		{"previous year", 2023, 0},
		{"next year", 2025, 0},
	}

	b := newTestBuilder(WeekLabelLast, 2024, time.February, 29)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := b.BuildYear(tt.year)
			if err != nil {
				t.Fatalf("BuildYear() error = %v", err)
			}
			if got := grid.TodayCount(); got != tt.wantCount {
				t.Errorf("TodayCount() = %d, want %d", got, tt.wantCount)
			}
		})
	}

	grid, _ := b.BuildYear(2024)
	feb := grid.Months[time.February-1]
	if !feb.HasToday {
		t.Error("February HasToday = false, want true")
	}
	if grid.Months[time.March-1].HasToday {
		t.Error("March HasToday = true, want false")
	}
	found := false
	for _, w := range feb.Weeks {
		for _, c := range w.Days {
			if c.Today && c.Day == 29 {
				found = true
			}
		}
	}
	if !found {
		t.Error("Feb 29 not flagged as today")
	}
}

func TestBuildYear_SystemClock(t *testing.T) {
	now := time.Now()
	grid, err := BuildYear(now.Year())
	if err != nil {
		t.Fatalf("BuildYear() error = %v", err)
	}
	// The clock may tick past midnight on New Year's Eve between the two reads.
	if got := grid.TodayCount(); got > 1 {
		t.Errorf("TodayCount() = %d, want at most 1", got)
	}
}

func TestBuildYear_WeekLabels(t *testing.T) {
	tests := []struct {
		name     string
		label    WeekLabel
		year     int
		month    time.Month
		row      int
		wantYear int
		wantWeek int
	}{
		// Jan 2021 row 0 holds Fri 1 .. Sun 3, all ISO 2020-W53.
		{"Jan 2021 first row, last label", WeekLabelLast, 2021, time.January, 0, 2020, 53},
		{"Jan 2021 first row, first label", WeekLabelFirst, 2021, time.January, 0, 2020, 53},
		// Dec 2024 last row holds Mon 30, Tue 31: ISO 2025-W01.
		{"Dec 2024 last row", WeekLabelLast, 2024, time.December, -1, 2025, 1},
		// Jan 2023 row 0 is Sun 1 only: ISO 2022-W52.
		{"Jan 2023 first row", WeekLabelLast, 2023, time.January, 0, 2022, 52},
		{"Jan 2024 first row", WeekLabelLast, 2024, time.January, 0, 2024, 1},
		{"Dec 2020 last row", WeekLabelFirst, 2020, time.December, -1, 2020, 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder(tt.label, 2000, time.January, 1)
			grid, err := b.BuildYear(tt.year)
			if err != nil {
				t.Fatalf("BuildYear() error = %v", err)
			}
			weeks := grid.Months[tt.month-1].Weeks
			row := tt.row
			if row < 0 {
				row = len(weeks) + row
			}
			w := weeks[row]
			if w.ISOYear != tt.wantYear || w.Number != tt.wantWeek {
				t.Errorf("row %d = %d-W%02d, want %d-W%02d",
					row, w.ISOYear, w.Number, tt.wantYear, tt.wantWeek)
			}
		})
	}
}

func TestBuildYear_LabelsMatchLastValidDay(t *testing.T) {
	b := newTestBuilder(WeekLabelLast, 2000, time.January, 1)
	grid, err := b.BuildYear(2026)
	if err != nil {
		t.Fatalf("BuildYear() error = %v", err)
	}

	for _, m := range grid.Months {
		for i, w := range m.Weeks {
			last := 0
			for _, c := range w.Days {
				if !c.Blank() {
					last = c.Day
				}
			}
			if last == 0 {
				t.Fatalf("%v row %d has no days", m.Month, i)
			}
			year, week := dateutil.Date{Year: 2026, Month: m.Month, Day: last}.ISOWeek()
			if w.ISOYear != year || w.Number != week {
				t.Errorf("%v row %d = %d-W%02d, want %d-W%02d", m.Month, i, w.ISOYear, w.Number, year, week)
			}
		}
	}
}

func TestBuildYear_OutOfRange(t *testing.T) {
	b := NewBuilder(nil, WeekLabelLast, zap.NewNop())

	for _, year := range []int{0, -5, 10000} {
		_, err := b.BuildYear(year)
		if !errors.Is(err, ErrYearOutOfRange) {
			t.Errorf("BuildYear(%d) error = %v, want ErrYearOutOfRange", year, err)
		}
	}
}

func TestBuildYear_DayTypes(t *testing.T) {
	b := newTestBuilder(WeekLabelLast, 2000, time.January, 1)
	grid, err := b.BuildYear(2025)
	if err != nil {
		t.Fatalf("BuildYear() error = %v", err)
	}

	for _, w := range grid.Months[0].Weeks {
		for col, c := range w.Days {
			if c.Blank() {
				if c.Type != 0 {
					t.Errorf("blank cell has type %v", c.Type)
				}
				continue
			}
			want := DayTypeWorkday
			if col >= 5 {
				want = DayTypeWeekend
			}
			if c.Type != want {
				t.Errorf("Jan %d type = %v, want %v", c.Day, c.Type, want)
			}
		}
	}
}

func TestParseWeekLabel(t *testing.T) {
	tests := []struct {
		input   string
		want    WeekLabel
		wantErr bool
	}{
		{"", WeekLabelLast, false},
		{"last", WeekLabelLast, false},
		{"first", WeekLabelFirst, false},
		{"middle", WeekLabelLast, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekLabel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseWeekLabel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
