package agents

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// suppressPrefixes lists flag families whose presence means the
// process must not touch the terminal: headless JSON surfaces and
// file exports.
var suppressPrefixes = []string{
	"--robot-",
	"--export-",
}

// suppressExact lists flags that short-circuit before any UI.
var suppressExact = []string{
	"--help",
	"-h",
	"--version",
	"--check-drift",
}

// ShouldSuppressTTY reports whether terminal queries (and the TUI
// itself) must be suppressed for this invocation: any robot, export,
// help, or version flag, or the TMV_ROBOT / TMV_TEST environment
// marks. args is os.Args including the program name.
func ShouldSuppressTTY(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}
	for _, arg := range args {
		flag := arg
		if i := strings.IndexByte(flag, '='); i >= 0 {
			flag = flag[:i]
		}
		for _, exact := range suppressExact {
			if flag == exact {
				return true
			}
		}
		for _, prefix := range suppressPrefixes {
			if strings.HasPrefix(flag, prefix) {
				return true
			}
		}
	}
	return false
}

// SuppressFromEnv reads the TMV_ROBOT and TMV_TEST marks. Any value
// other than empty or "0" counts as set.
func SuppressFromEnv() (robot, test bool) {
	return envSet("TMV_ROBOT"), envSet("TMV_TEST")
}

func envSet(name string) bool {
	v := os.Getenv(name)
	return v != "" && v != "0"
}

// IsInteractive reports whether f is attached to a real terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
