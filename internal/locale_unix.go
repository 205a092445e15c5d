//go:build !windows && !darwin

package internal

import "os"

// detectSystemLocale returns the system locale string on Unix-like systems.
// For UI text the priority is LC_ALL, LC_MESSAGES, LANG as in POSIX.
// Returns empty string if no valid locale is found.
func detectSystemLocale() string {
	for _, envVar := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
