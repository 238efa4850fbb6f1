package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

var gitHubEnvKeys = []string{
	"GITHUB_REPOSITORY",
	"GITHUB_REPOSITORY_OWNER",
	"GITHUB_REF",
	"GITHUB_SHA",
	"GITHUB_EVENT_NAME",
	"GITHUB_EVENT_PATH",
	"GITHUB_ACTOR",
	"GITHUB_WORKFLOW",
	"GITHUB_RUN_ID",
	"GITHUB_SERVER_URL",
	"GITHUB_OUTPUT",
}

// SetGitHubEnv replaces all GITHUB_* variables used by the tool with env.
// Variables not in env are set to empty so that values of the runner
// executing the test do not leak in.
func SetGitHubEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range gitHubEnvKeys {
		t.Setenv(key, env[key])
	}
}

// UnsetGitHubEnv removes all GITHUB_* variables used by the tool. They are
// restored after the test.
func UnsetGitHubEnv(t *testing.T) {
	t.Helper()
	for _, key := range gitHubEnvKeys {
		t.Setenv(key, "")
		gt.NoError(t, os.Unsetenv(key))
	}
}

// WriteFile writes data to name in a temporary directory and returns its path.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
