package render

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openCommand returns the command line that opens target with the desktop's default handler
func openCommand(goos, target string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", target}
	case "darwin":
		return []string{"open", target}
	default:
		return []string{"xdg-open", target}
	}
}

// Open shows target (a file path or URL) in the default browser without waiting for it
func Open(target string) error {
	args := openCommand(runtime.GOOS, target)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s: %w", args[0], err)
	}
	go cmd.Wait()
	return nil
}
