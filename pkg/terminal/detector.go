// Package terminal decides whether output goes to an interactive terminal
// and therefore whether ANSI colors should be used.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"FORGEJO_ACTIONS",
	"GITEA_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
	"TF_BUILD",
}

// ColorMode is the output.color setting.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsCIEnvironment reports whether a known CI variable is set.
func IsCIEnvironment() bool {
	for _, v := range ciEnvVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// UseColor resolves mode for output written to f.
// NO_COLOR always wins over auto; CI logs get no colors in auto mode.
func UseColor(mode ColorMode, f *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if IsCIEnvironment() {
		return false
	}
	return IsTerminal(f)
}
