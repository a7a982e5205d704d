package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/username/calendarweek/internal/autostart"
	"github.com/username/calendarweek/internal/calendar"
	"github.com/username/calendarweek/internal/instance"
	"github.com/username/calendarweek/internal/render"
	"github.com/username/calendarweek/pkg/dateutil"
	"go.uber.org/zap"
)

func weekCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Print the ISO week of a date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := dateutil.Today()
			if len(args) == 1 {
				parsed, err := dateutil.ParseDate(args[0])
				if err != nil {
					return err
				}
				date = parsed
			}
			return printWeek(cmd.OutOrStdout(), date, short)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the two-digit week number")
	return cmd
}

func printWeek(w io.Writer, date dateutil.Date, short bool) error {
	isoYear, week := dateutil.ISOWeek(date)
	if short {
		_, err := fmt.Fprintf(w, "%02d\n", week)
		return err
	}

	monday := dateutil.StartOfWeek(date.Time())
	sunday := dateutil.EndOfWeek(date.Time())
	_, err := fmt.Fprintf(w, "%s\n%s .. %s (%d weeks in %d)\n",
		dateutil.FormatWeek(isoYear, week),
		monday.Format("Mon 2006-01-02"),
		sunday.Format("Mon 2006-01-02"),
		dateutil.WeeksInYear(isoYear), isoYear)
	return err
}

func calendarCmd() *cobra.Command {
	var (
		htmlPath string
		open     bool
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "calendar [year]",
		Short: "Print the year calendar with ISO week numbers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := dateutil.Today().Year
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
				year = parsed
			}

			builder, err := newBuilder()
			if err != nil {
				return err
			}
			grid, err := builder.BuildYear(year)
			if err != nil {
				return err
			}

			if htmlPath == "" && !open {
				opts := render.TextOptions{Color: !noColor && render.ColorEnabled(os.Stdout)}
				return render.WriteText(cmd.OutOrStdout(), grid, opts)
			}

			path, err := writePage(grid, htmlPath)
			if err != nil {
				return err
			}
			logger.Info("Calendar page written", zap.String("path", path))

			if open {
				return render.Open(path)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "Write the calendar as HTML to this file")
	cmd.Flags().BoolVar(&open, "open", false, "Open the HTML calendar in the browser")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable terminal colors")
	return cmd
}

func writePage(grid *calendar.Grid, htmlPath string) (string, error) {
	if htmlPath == "" {
		return render.WriteHTMLFile(cfg.Calendar.GetOutputDir(), grid)
	}

	f, err := os.Create(htmlPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", htmlPath, err)
	}
	defer f.Close()

	if err := render.WriteHTML(f, grid); err != nil {
		return "", err
	}
	return htmlPath, f.Close()
}

func autostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage starting at login",
	}

	manager := func() (*autostart.Manager, error) {
		return autostart.New(appName, logger)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the application starts at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			path, ok, err := m.RegisteredPath()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Location:   %s\n", m.Location())
			if !ok {
				fmt.Fprintln(out, "Enabled:    no")
				return nil
			}
			fmt.Fprintln(out, "Enabled:    yes")
			fmt.Fprintf(out, "Registered: %s\n", path)
			if err := m.Check(); autostart.IsPathMismatch(err) {
				fmt.Fprintf(out, "Current:    %s\n", m.ExecutablePath())
				fmt.Fprintln(out, "The application has been moved; run 'calendarweek autostart fix'.")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start the application at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.Enable(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enabled: %s\n", m.Location())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop starting the application at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.Disable(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Disabled")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "fix",
		Short: "Point the login entry at this executable",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager()
			if err != nil {
				return err
			}
			if err := m.Check(); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to fix")
				return nil
			} else if !autostart.IsPathMismatch(err) {
				return err
			}
			if err := m.Fix(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Startup path updated to %s\n", m.ExecutablePath())
			return nil
		},
	})

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Ask the running tray instance to open its calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return instance.Notify(cfg.Instance.GetAddress(), instance.CommandShow)
		},
	}
}
