//go:build !windows && !darwin

package autostart

func newStore(appName, home string) store {
	return newDesktopStore(appName, xdgAutostartDir(home))
}
