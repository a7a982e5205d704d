package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const desktopSection = "Desktop Entry"

// Desktop entries have no inline comments, and Exec keeps its own quoting.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
}

// desktopStore manages $XDG_CONFIG_HOME/autostart/<app>.desktop
type desktopStore struct {
	appName string
	dir     string
}

func newDesktopStore(appName, dir string) *desktopStore {
	return &desktopStore{appName: appName, dir: dir}
}

// xdgAutostartDir returns the autostart directory for home
func xdgAutostartDir(home string) string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart")
	}
	return filepath.Join(home, ".config", "autostart")
}

func (s *desktopStore) Location() string {
	return filepath.Join(s.dir, s.appName+".desktop")
}

func (s *desktopStore) Registered() (string, bool, error) {
	cfg, err := ini.LoadSources(iniOptions, s.Location())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to parse %s: %w", s.Location(), err)
	}

	sec := cfg.Section(desktopSection)
	if sec.Key("Hidden").MustBool(false) || !sec.Key("X-GNOME-Autostart-enabled").MustBool(true) {
		return "", false, nil
	}
	return unquoteExec(sec.Key("Exec").String()), true, nil
}

func (s *desktopStore) Register(exePath string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create autostart dir: %w", err)
	}

	cfg := ini.Empty(iniOptions)
	sec, err := cfg.NewSection(desktopSection)
	if err != nil {
		return err
	}
	for _, kv := range [][2]string{
		{"Type", "Application"},
		{"Name", s.appName},
		{"Exec", quoteExec(exePath)},
		{"Hidden", "false"},
		{"NoDisplay", "false"},
		{"X-GNOME-Autostart-enabled", "true"},
	} {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return err
		}
	}

	// Desktop entries are conventionally written as Key=Value.
	ini.PrettyFormat = false
	if err := cfg.SaveTo(s.Location()); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Location(), err)
	}
	return nil
}

func (s *desktopStore) Unregister() error {
	if err := os.Remove(s.Location()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// quoteExec quotes a path for the Exec key when it contains reserved characters
func quoteExec(path string) string {
	if !strings.ContainsAny(path, " \t\"'\\$`") {
		return path
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(path) + `"`
}

func unquoteExec(exec string) string {
	exec = strings.TrimSpace(exec)
	if len(exec) >= 2 && strings.HasPrefix(exec, `"`) {
		if end := strings.LastIndex(exec, `"`); end > 0 {
			r := strings.NewReplacer(`\\`, `\`, `\"`, `"`, "\\`", "`", `\$`, `$`)
			return r.Replace(exec[1:end])
		}
	}
	// Unquoted: the program is the first field, the rest are arguments.
	if i := strings.IndexAny(exec, " \t"); i > 0 {
		return exec[:i]
	}
	return exec
}
