package daemon

import (
	"fmt"
	"sync"

	"fyne.io/systray"
	"github.com/username/calendarweek/internal/autostart"
	"github.com/username/calendarweek/internal/icon"
	"go.uber.org/zap"
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
	once   sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	_, week := t.daemon.CurrentWeek()
	t.SetWeek(week)

	mOpen := systray.AddMenuItem("Open Calendar", "Show the full-year calendar")
	systray.AddSeparator()
	mStartup := systray.AddMenuItemCheckbox(autostart.Label(), "Start automatically at login", t.daemon.AutostartEnabled())
	if t.daemon.startup == nil {
		mStartup.Disable()
	}
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Exit", "Exit the application")

	// Keeps the icon in step with the calendar from here on
	go t.daemon.runRefreshLoop()

	go func() {
		for {
			select {
			case <-mOpen.ClickedCh:
				t.logger.Info("Open Calendar clicked from tray")
				go t.daemon.showCalendarLogged()
			case <-mStartup.ClickedCh:
				enabled, err := t.daemon.ToggleAutostart()
				if err != nil {
					t.logger.Error("Failed to toggle autostart", zap.Error(err))
					continue
				}
				if enabled {
					mStartup.Check()
				} else {
					mStartup.Uncheck()
				}
			case <-mQuit.ClickedCh:
				t.logger.Info("Exit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.once.Do(func() { close(t.quit) })
}

// SetWeek redraws the icon, tooltip and title for week
func (t *TrayApp) SetWeek(week int) {
	data, err := icon.ForTray(week)
	if err != nil {
		t.logger.Error("Failed to render tray icon", zap.Error(err))
	} else {
		systray.SetIcon(data)
	}

	label := fmt.Sprintf("%02d", week)
	systray.SetTooltip("Week " + label)
	if t.daemon.showTitle {
		systray.SetTitle(label)
	}
}
