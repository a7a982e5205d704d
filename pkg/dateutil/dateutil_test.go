package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestISOWeek(t *testing.T) {
	tests := []struct {
		name     string
		input    Date
		wantYear int
		wantWeek int
	}{
		{"New Year 2024 is Monday of week 1", Date{2024, time.January, 1}, 2024, 1},
		{"Sunday Jan 1 2023 belongs to previous ISO year", Date{2023, time.January, 1}, 2022, 52},
		{"Dec 31 2021 is week 52", Date{2021, time.December, 31}, 2021, 52},
		{"2020 has 53 weeks", Date{2020, time.December, 31}, 2020, 53},
		{"Late December rolls into next ISO year", Date{2024, time.December, 30}, 2025, 1},
		{"Jan 1 2021 is in week 53 of 2020", Date{2021, time.January, 1}, 2020, 53},
		{"Mid January 2025", Date{2025, time.January, 15}, 2025, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, week := ISOWeek(tt.input)

			if year != tt.wantYear || week != tt.wantWeek {
				t.Errorf("ISOWeek(%v) = (%v, %v), want (%v, %v)",
					tt.input, year, week, tt.wantYear, tt.wantWeek)
			}
		})
	}
}

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantErr bool
	}{
		{"Valid date", 2025, time.March, 14, false},
		{"Leap day in leap year", 2024, time.February, 29, false},
		{"Leap day in common year", 2023, time.February, 29, true},
		{"Century non-leap year", 1900, time.February, 29, true},
		{"Day zero", 2025, time.January, 0, true},
		{"Day 32", 2025, time.January, 32, true},
		{"April 31", 2025, time.April, 31, true},
		{"Month 13", 2025, time.Month(13), 1, true},
		{"Year zero", 0, time.January, 1, true},
		{"Year 10000", 10000, time.January, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDate(tt.year, tt.month, tt.day)

			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDate(%d, %d, %d) error = %v, wantErr %v",
					tt.year, tt.month, tt.day, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("error %v does not wrap ErrInvalidDate", err)
				}
				return
			}
			if d.Year != tt.year || d.Month != tt.month || d.Day != tt.day {
				t.Errorf("NewDate() = %v", d)
			}
		})
	}
}

func TestWeeksInYear(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{2015, 53},
		{2019, 52},
		{2020, 53},
		{2021, 52},
		{2026, 53},
	}

	for _, tt := range tests {
		if got := WeeksInYear(tt.year); got != tt.want {
			t.Errorf("WeeksInYear(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestMondayIndex(t *testing.T) {
	want := map[time.Weekday]int{
		time.Monday:    0,
		time.Tuesday:   1,
		time.Wednesday: 2,
		time.Thursday:  3,
		time.Friday:    4,
		time.Saturday:  5,
		time.Sunday:    6,
	}

	for weekday, idx := range want {
		if got := MondayIndex(weekday); got != idx {
			t.Errorf("MondayIndex(%v) = %d, want %d", weekday, got, idx)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "Wednesday returns Monday",
			input:    time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Monday returns same Monday",
			input:    time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "Sunday returns previous Monday",
			input:    time.Date(2025, 1, 19, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfWeek(tt.input)

			if !result.Equal(tt.expected) {
				t.Errorf("StartOfWeek(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"),
					result.Format("2006-01-02 Mon"),
					tt.expected.Format("2006-01-02 Mon"))
			}
			if end := EndOfWeek(tt.input); end.Weekday() != time.Sunday {
				t.Errorf("EndOfWeek(%v) = %v, want a Sunday", tt.input, end.Format("2006-01-02 Mon"))
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"ISO format YYYY-MM-DD", "2025-01-15", Date{2025, time.January, 15}, false},
		{"Dotted format DD.MM.YYYY", "15.01.2025", Date{2025, time.January, 15}, false},
		{"Slashed format", "2025/01/15", Date{2025, time.January, 15}, false},
		{"Impossible date", "2025-02-30", Date{}, true},
		{"Garbage", "next tuesday", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && result != tt.want {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	d := Date{2025, time.March, 7}
	if got := d.String(); got != "2025-03-07" {
		t.Errorf("String() = %q", got)
	}
	if got := FormatWeek(2020, 3); got != "2020-W03" {
		t.Errorf("FormatWeek() = %q", got)
	}
	if got := d.AddDays(-7); got != (Date{2025, time.February, 28}) {
		t.Errorf("AddDays(-7) = %v", got)
	}
}
