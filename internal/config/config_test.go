package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if got := cfg.Tray.GetRefreshInterval(); got != time.Hour {
		t.Errorf("GetRefreshInterval() = %v, want 1h", got)
	}
	if !cfg.Tray.Title {
		t.Error("Tray.Title = false, want true")
	}
	if cfg.Calendar.WeekLabel != "last" {
		t.Errorf("Calendar.WeekLabel = %q, want last", cfg.Calendar.WeekLabel)
	}
	if got := cfg.Instance.GetAddress(); got != DefaultInstanceAddress {
		t.Errorf("GetAddress() = %q", got)
	}
	if got := cfg.Calendar.GetOutputDir(); got != os.TempDir() {
		t.Errorf("GetOutputDir() = %q, want %q", got, os.TempDir())
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
tray:
  refresh_interval: 10m
  title: false
calendar:
  week_label: first
  holidays_file: /tmp/days.txt
instance:
  address: 127.0.0.1:50000
autostart:
  fix_moved: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if got := cfg.Tray.GetRefreshInterval(); got != 10*time.Minute {
		t.Errorf("GetRefreshInterval() = %v", got)
	}
	if cfg.Tray.Title {
		t.Error("Tray.Title = true, want false")
	}
	if cfg.Calendar.WeekLabel != "first" || cfg.Calendar.HolidaysFile != "/tmp/days.txt" {
		t.Errorf("Calendar = %+v", cfg.Calendar)
	}
	if cfg.Instance.Address != "127.0.0.1:50000" {
		t.Errorf("Instance.Address = %q", cfg.Instance.Address)
	}
	if !cfg.Autostart.FixMoved {
		t.Error("Autostart.FixMoved = false, want true")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CALENDARWEEK_LOG_LEVEL", "warn")
	t.Setenv("CALENDARWEEK_CALENDAR_WEEK_LABEL", "first")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Calendar.WeekLabel != "first" {
		t.Errorf("Calendar.WeekLabel = %q, want first", cfg.Calendar.WeekLabel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value is valid", Config{}, false},
		{"bad week label", Config{Calendar: CalendarConfig{WeekLabel: "middle"}}, true},
		{"bad interval", Config{Tray: TrayConfig{RefreshInterval: "soon"}}, true},
		{"interval too short", Config{Tray: TrayConfig{RefreshInterval: "10ms"}}, true},
		{"bad address", Config{Instance: InstanceConfig{Address: "localhost"}}, true},
		{"good address", Config{Instance: InstanceConfig{Address: "127.0.0.1:1"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "calendar:\n  week_label: sideways\n")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid week_label, got nil")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CW_TEST_DIR", "/srv/cw")
	cfg := Config{Calendar: CalendarConfig{HolidaysFile: "$CW_TEST_DIR/days.txt"}}
	cfg.ExpandEnvVars()
	if cfg.Calendar.HolidaysFile != "/srv/cw/days.txt" {
		t.Errorf("HolidaysFile = %q", cfg.Calendar.HolidaysFile)
	}
}
