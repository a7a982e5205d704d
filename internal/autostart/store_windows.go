//go:build windows

package autostart

import (
	"errors"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// runKeyStore manages the HKCU Run value named after the application
type runKeyStore struct {
	appName string
}

func newStore(appName, home string) store {
	return &runKeyStore{appName: appName}
}

func (s *runKeyStore) Location() string {
	return `HKEY_CURRENT_USER\` + runKeyPath + `\` + s.appName
}

func (s *runKeyStore) Registered() (string, bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(s.appName)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.Trim(value, `"`), true, nil
}

func (s *runKeyStore) Register(exePath string) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	return key.SetStringValue(s.appName, `"`+exePath+`"`)
}

func (s *runKeyStore) Unregister() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return err
	}
	defer key.Close()

	if err := key.DeleteValue(s.appName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return err
	}
	return nil
}
