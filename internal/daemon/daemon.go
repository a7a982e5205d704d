package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/calendarweek/internal/autostart"
	"github.com/username/calendarweek/internal/calendar"
	"github.com/username/calendarweek/internal/config"
	"github.com/username/calendarweek/internal/instance"
	"github.com/username/calendarweek/internal/render"
	"go.uber.org/zap"
)

// Daemon keeps the tray icon on the current ISO week and serves calendar requests
type Daemon struct {
	builder         *calendar.Builder
	startup         *autostart.Manager // nil when autostart is unavailable
	lock            *instance.Lock     // nil when running without single-instance lock
	refreshInterval time.Duration
	outputDir       string
	showTitle       bool
	fixMoved        bool
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	trayApp         *TrayApp

	now  func() time.Time
	open func(target string) error

	mu      sync.Mutex
	isoYear int
	week    int
	lastRun time.Time
}

// Status is a snapshot of what the tray shows
type Status struct {
	ISOYear           int
	Week              int
	LastRefresh       time.Time
	NextRefresh       time.Time
	Autostart         bool
	AutostartLocation string
}

// NewDaemon creates a new daemon instance
func NewDaemon(cfg *config.Config, builder *calendar.Builder, startup *autostart.Manager, lock *instance.Lock, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		builder:         builder,
		startup:         startup,
		lock:            lock,
		refreshInterval: cfg.Tray.GetRefreshInterval(),
		outputDir:       cfg.Calendar.GetOutputDir(),
		showTitle:       cfg.Tray.Title,
		fixMoved:        cfg.Autostart.FixMoved,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
		now:             time.Now,
		open:            render.Open,
	}
}

// Start runs the tray (blocks until Exit is chosen or the daemon is stopped)
func (d *Daemon) Start() error {
	d.checkStartupPath()

	if d.lock != nil {
		go d.lock.Serve(d.ctx, d.handleCommand)
	}

	d.logger.Info("Initializing system tray",
		zap.Duration("refresh_interval", d.refreshInterval))
	trayApp, err := NewTrayApp(d, d.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize system tray: %w", err)
	}
	d.trayApp = trayApp
	d.trayApp.Run()
	d.Stop()
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
	if d.lock != nil {
		d.lock.Close()
	}
}

// runRefreshLoop re-checks the ISO week on a ticker (called from the tray once it is ready)
func (d *Daemon) runRefreshLoop() {
	d.refresh(d.now())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			d.Stop()
			return

		case <-ticker.C:
			d.refresh(d.now())
		}
	}
}

// refresh recomputes the ISO week for now and updates the tray when it changed.
// It reports whether the week changed.
func (d *Daemon) refresh(now time.Time) bool {
	isoYear, week := now.ISOWeek()

	d.mu.Lock()
	changed := isoYear != d.isoYear || week != d.week
	d.isoYear, d.week = isoYear, week
	d.lastRun = now
	d.mu.Unlock()

	if !changed {
		return false
	}

	d.logger.Info("Week changed",
		zap.Int("iso_year", isoYear),
		zap.Int("week", week))
	if d.trayApp != nil {
		d.trayApp.SetWeek(week)
	}
	return true
}

// CurrentWeek returns the ISO week shown in the tray
func (d *Daemon) CurrentWeek() (isoYear, week int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.week == 0 {
		return d.now().ISOWeek()
	}
	return d.isoYear, d.week
}

// ShowCalendar renders the current year and opens it in the browser.
// It returns the path of the rendered page.
func (d *Daemon) ShowCalendar() (string, error) {
	year := d.now().Year()
	grid, err := d.builder.BuildYear(year)
	if err != nil {
		return "", fmt.Errorf("failed to build calendar: %w", err)
	}

	path, err := render.WriteHTMLFile(d.outputDir, grid)
	if err != nil {
		return "", err
	}

	if err := d.open(path); err != nil {
		return path, fmt.Errorf("failed to open calendar: %w", err)
	}

	d.logger.Info("Calendar opened",
		zap.Int("year", year),
		zap.String("path", path))
	return path, nil
}

func (d *Daemon) showCalendarLogged() {
	if _, err := d.ShowCalendar(); err != nil {
		d.logger.Error("Show calendar failed", zap.Error(err))
	}
}

// handleCommand serves requests sent by later launches of the application
func (d *Daemon) handleCommand(command string) {
	switch command {
	case instance.CommandShow:
		d.showCalendarLogged()
	default:
		d.logger.Warn("Unknown command from new instance", zap.String("command", command))
	}
}

// AutostartEnabled reports the login-startup state; false when unavailable
func (d *Daemon) AutostartEnabled() bool {
	if d.startup == nil {
		return false
	}
	enabled, err := d.startup.Enabled()
	if err != nil {
		d.logger.Warn("Failed to read autostart state", zap.Error(err))
		return false
	}
	return enabled
}

// ToggleAutostart flips login startup and returns the new state
func (d *Daemon) ToggleAutostart() (bool, error) {
	if d.startup == nil {
		return false, fmt.Errorf("autostart is not available")
	}
	return d.startup.Toggle()
}

// checkStartupPath warns when the registered executable moved, and re-registers
// it when autostart.fix_moved is set
func (d *Daemon) checkStartupPath() {
	if d.startup == nil {
		return
	}
	err := d.startup.Check()
	if err == nil {
		return
	}
	if !autostart.IsPathMismatch(err) {
		d.logger.Warn("Failed to check autostart entry", zap.Error(err))
		return
	}

	if !d.fixMoved {
		d.logger.Warn("Autostart entry points at another executable; run 'autostart fix' to update it",
			zap.Error(err))
		return
	}
	if err := d.startup.Fix(); err != nil {
		d.logger.Error("Failed to update autostart entry", zap.Error(err))
		return
	}
	d.logger.Info("Autostart entry updated to the current executable")
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() Status {
	isoYear, week := d.CurrentWeek()

	d.mu.Lock()
	lastRun := d.lastRun
	d.mu.Unlock()

	status := Status{
		ISOYear:     isoYear,
		Week:        week,
		LastRefresh: lastRun,
		Autostart:   d.AutostartEnabled(),
	}
	if !lastRun.IsZero() {
		status.NextRefresh = lastRun.Add(d.refreshInterval)
	}
	if d.startup != nil {
		status.AutostartLocation = d.startup.Location()
	}
	return status
}
