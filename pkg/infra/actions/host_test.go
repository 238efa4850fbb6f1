package actions_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/m-mizutani/actnotify/pkg/infra/actions"
	"github.com/m-mizutani/gt"
)

func TestSetOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	gt.NoError(t, os.WriteFile(path, []byte("before=1\n"), 0644))

	var buf bytes.Buffer
	host := actions.New(actions.WithWriter(&buf), actions.WithOutputFile(path))
	gt.NoError(t, host.SetOutput("message-id", "1503435956.000247"))
	gt.NoError(t, host.SetOutput("multi", "a\nb"))

	raw := gt.R1(os.ReadFile(path)).NoError(t)
	pattern := regexp.MustCompile(`^before=1\n` +
		`message-id<<(ghadelimiter_[0-9a-f-]{36})\n1503435956\.000247\n(ghadelimiter_[0-9a-f-]{36})\n` +
		`multi<<(ghadelimiter_[0-9a-f-]{36})\na\nb\n(ghadelimiter_[0-9a-f-]{36})\n$`)
	m := pattern.FindStringSubmatch(string(raw))
	gt.A(t, m).Length(5)
	gt.Equal(t, m[1], m[2])
	gt.Equal(t, m[3], m[4])
	gt.True(t, m[1] != m[3])

	// Nothing is written to the workflow command stream.
	gt.Equal(t, buf.String(), "")
}

func TestSetOutputCommand(t *testing.T) {
	var buf bytes.Buffer
	host := actions.New(actions.WithWriter(&buf))
	gt.NoError(t, host.SetOutput("message-id", "1503435956.000247"))
	gt.NoError(t, host.SetOutput("a:b,c", "100%\ndone"))

	gt.Equal(t, buf.String(),
		"::set-output name=message-id::1503435956.000247\n"+
			"::set-output name=a%3Ab%2Cc::100%25%0Adone\n")
}

func TestSetOutputFileError(t *testing.T) {
	host := actions.New(actions.WithOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "output")))
	gt.True(t, host.SetOutput("message-id", "x") != nil)
}

func TestSetFailed(t *testing.T) {
	var buf bytes.Buffer
	host := actions.New(actions.WithWriter(&buf))
	host.SetFailed("failed to send message: Error from Slack: channel_not_found\nat 100%")

	gt.Equal(t, buf.String(),
		"::error::failed to send message: Error from Slack: channel_not_found%0Aat 100%25\n")
}
