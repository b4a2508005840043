package utils

import (
	"runtime"
)

// OpenCommand returns the program and arguments that open target (a URL or
// file) with the desktop's default application on the current platform.
func OpenCommand(target string) (string, []string) {
	return openCommandFor(runtime.GOOS, target)
}

func openCommandFor(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
