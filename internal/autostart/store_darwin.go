//go:build darwin

package autostart

import "path/filepath"

func newStore(appName, home string) store {
	return newLaunchAgentStore(appName, filepath.Join(home, "Library", "LaunchAgents"))
}
