// Package autostart registers the application to start at user login:
// an XDG .desktop file on Linux/BSD, a LaunchAgent on macOS and the HKCU Run
// key on Windows.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// store is one platform's login-item mechanism
type store interface {
	// Location describes where the registration lives (file path or registry key)
	Location() string
	// Registered returns the executable path currently registered
	Registered() (exePath string, ok bool, err error)
	Register(exePath string) error
	Unregister() error
}

// PathMismatch reports that the registered executable is not the running one,
// usually because the binary was moved after autostart was enabled
type PathMismatch struct {
	Registered string
	Current    string
}

func (p *PathMismatch) Error() string {
	return fmt.Sprintf("the application has been moved: registered path %s, current path %s",
		p.Registered, p.Current)
}

// Manager enables, disables and repairs login startup
type Manager struct {
	appName string
	exePath string
	store   store
	logger  *zap.Logger
}

// New creates a manager for the running executable
func New(appName string, logger *zap.Logger) (*Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return newManager(appName, exe, newStore(appName, home), logger), nil
}

func newManager(appName, exePath string, s store, logger *zap.Logger) *Manager {
	return &Manager{
		appName: appName,
		exePath: exePath,
		store:   s,
		logger:  logger,
	}
}

// Label is the menu text for the startup toggle
func Label() string {
	if runtime.GOOS == "windows" {
		return "Start with Windows"
	}
	return "Start at Login"
}

// Location returns where the registration is stored
func (m *Manager) Location() string {
	return m.store.Location()
}

// ExecutablePath returns the path that Enable registers
func (m *Manager) ExecutablePath() string {
	return m.exePath
}

// Enabled reports whether the application is registered for login startup
func (m *Manager) Enabled() (bool, error) {
	_, ok, err := m.store.Registered()
	if err != nil {
		return false, fmt.Errorf("failed to read autostart entry: %w", err)
	}
	return ok, nil
}

// RegisteredPath returns the executable path of the current registration
func (m *Manager) RegisteredPath() (string, bool, error) {
	path, ok, err := m.store.Registered()
	if err != nil {
		return "", false, fmt.Errorf("failed to read autostart entry: %w", err)
	}
	return path, ok, nil
}

// Enable registers the running executable
func (m *Manager) Enable() error {
	if err := m.store.Register(m.exePath); err != nil {
		return fmt.Errorf("failed to enable autostart: %w", err)
	}
	m.logger.Info("Autostart enabled",
		zap.String("location", m.store.Location()),
		zap.String("executable", m.exePath))
	return nil
}

// Disable removes the registration; removing a missing one is not an error
func (m *Manager) Disable() error {
	if err := m.store.Unregister(); err != nil {
		return fmt.Errorf("failed to disable autostart: %w", err)
	}
	m.logger.Info("Autostart disabled", zap.String("location", m.store.Location()))
	return nil
}

// Toggle flips the registration and returns the new state
func (m *Manager) Toggle() (bool, error) {
	enabled, err := m.Enabled()
	if err != nil {
		return false, err
	}
	if enabled {
		return false, m.Disable()
	}
	return true, m.Enable()
}

// Check returns a *PathMismatch error when the registration points at another executable.
// Not being registered is fine.
func (m *Manager) Check() error {
	registered, ok, err := m.RegisteredPath()
	if err != nil {
		return err
	}
	if !ok || registered == "" {
		return nil
	}
	if filepath.Clean(registered) != filepath.Clean(m.exePath) {
		return &PathMismatch{Registered: registered, Current: m.exePath}
	}
	return nil
}

// Fix re-registers the running executable
func (m *Manager) Fix() error {
	if err := m.store.Unregister(); err != nil {
		m.logger.Warn("Failed to remove stale autostart entry", zap.Error(err))
	}
	return m.Enable()
}

// IsPathMismatch reports whether err is a *PathMismatch
func IsPathMismatch(err error) bool {
	var mismatch *PathMismatch
	return errors.As(err, &mismatch)
}
