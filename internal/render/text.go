// Package render turns a calendar.Grid into something a person can look at:
// plain text for the terminal or an HTML page for the browser.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/username/calendarweek/internal/calendar"
	"golang.org/x/term"
)

const (
	ansiReverse = "\x1b[7m"
	ansiDim     = "\x1b[2m"
	ansiRed     = "\x1b[31m"
	ansiReset   = "\x1b[0m"
)

// DayNames are the Monday-first column headers
var DayNames = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// TextOptions controls terminal output
type TextOptions struct {
	// Color enables ANSI highlighting; without it today is marked with '*'
	Color bool
}

// ColorEnabled reports whether f is a terminal that should get ANSI colors
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// WriteText writes the year grid one month after another
func WriteText(w io.Writer, g *calendar.Grid, opts TextOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", g.Year)
	for i, m := range g.Months {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "\n%s\n", m.Month)
		bw.WriteString(" W ")
		for _, name := range DayNames {
			fmt.Fprintf(bw, " %s", name)
		}
		bw.WriteString("\n")

		for _, week := range m.Weeks {
			fmt.Fprintf(bw, "%s%02d%s ", dim(opts), week.Number, reset(opts))
			for _, cell := range week.Days {
				bw.WriteString(textCell(cell, opts))
			}
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

func textCell(c calendar.Cell, opts TextOptions) string {
	if c.Blank() {
		return "   "
	}
	if !opts.Color {
		if c.Today {
			return fmt.Sprintf("*%2d", c.Day)
		}
		return fmt.Sprintf(" %2d", c.Day)
	}

	switch {
	case c.Today:
		return fmt.Sprintf(" %s%2d%s", ansiReverse, c.Day, ansiReset)
	case c.Type == calendar.DayTypeHoliday:
		return fmt.Sprintf(" %s%2d%s", ansiRed, c.Day, ansiReset)
	case c.Type == calendar.DayTypeWeekend:
		return fmt.Sprintf(" %s%2d%s", ansiDim, c.Day, ansiReset)
	}
	return fmt.Sprintf(" %2d", c.Day)
}

func dim(opts TextOptions) string {
	if opts.Color {
		return ansiDim
	}
	return ""
}

func reset(opts TextOptions) string {
	if opts.Color {
		return ansiReset
	}
	return ""
}
