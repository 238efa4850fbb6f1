package types

import "fmt"

const AppName = "actnotify"

// AppVersion is replaced at build time by -ldflags.
var AppVersion = "dev"

// MessageID is the Slack message timestamp (`ts`). It is opaque outside of
// Slack and only meaningful as the target of a later update.
type MessageID string

func (x MessageID) String() string { return string(x) }

// UserAgent identifies the repository on whose behalf the message is sent.
func UserAgent(owner, repo string) string {
	return fmt.Sprintf("%s/%s (via %s/%s)", owner, repo, AppName, AppVersion)
}
