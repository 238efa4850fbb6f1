package config

import "strings"

// InputEnv returns the environment variables for an action input: the
// INPUT_* variable set by the Actions runner, then ACTNOTIFY_*.
func InputEnv(name string) []string {
	return []string{
		"INPUT_" + strings.ToUpper(name),
		"ACTNOTIFY_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_")),
	}
}
