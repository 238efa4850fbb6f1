package model

import (
	"strings"

	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/goerr"
)

const DefaultServerURL = "https://github.com"

// TriggerContext describes the commit, branch and event that triggered the
// workflow run. It is built once by an adapter at the boundary and never
// mutated afterwards.
type TriggerContext struct {
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	Ref       string `json:"ref"`
	SHA       string `json:"sha"`
	EventName string `json:"event_name"`
	Actor     string `json:"actor"`
	Workflow  string `json:"workflow"`
	RunID     string `json:"run_id"`
	ServerURL string `json:"server_url"`

	// PullRequest is set only for pull request events.
	PullRequest *PullRequestHead `json:"pull_request,omitempty"`
}

type PullRequestHead struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

func (x TriggerContext) IsPullRequest() bool {
	return x.EventName == "pull_request" || x.EventName == "pull_request_target"
}

func (x TriggerContext) Validate() error {
	if x.Owner == "" || x.Repo == "" {
		return types.ErrInvalidContext.Wrap(goerr.New("missing owner/repo from context"))
	}
	if x.Ref == "" {
		return types.ErrInvalidContext.Wrap(goerr.New("missing git ref from context"))
	}
	if x.SHA == "" {
		return types.ErrInvalidContext.Wrap(goerr.New("missing git sha from context"))
	}
	if x.IsPullRequest() && (x.PullRequest == nil || x.PullRequest.Ref == "" || x.PullRequest.SHA == "") {
		return types.ErrInvalidContext.Wrap(
			goerr.New("missing pull request payload").With("event_name", x.EventName))
	}
	return nil
}

// Source returns the branch and commit the notification is about. For pull
// requests this is the head of the pull request, never the base ref.
func (x TriggerContext) Source() (branch, sha string) {
	if x.IsPullRequest() && x.PullRequest != nil {
		return x.PullRequest.Ref, x.PullRequest.SHA
	}
	return strings.TrimPrefix(x.Ref, "refs/heads/"), x.SHA
}

func (x TriggerContext) Server() string {
	if x.ServerURL == "" {
		return DefaultServerURL
	}
	return strings.TrimSuffix(x.ServerURL, "/")
}

func (x TriggerContext) RepoURL() string {
	return x.Server() + "/" + x.Owner + "/" + x.Repo
}
