// Package ghctx normalizes the GitHub Actions trigger metadata into
// model.TriggerContext. The metadata is available either as GITHUB_*
// environment variables or as the structured `github` context serialized by
// `toJSON(github)`.
package ghctx

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/goerr"
)

type envContext struct {
	Repository      string `envconfig:"REPOSITORY"`
	RepositoryOwner string `envconfig:"REPOSITORY_OWNER"`
	Ref             string `envconfig:"REF"`
	SHA             string `envconfig:"SHA"`
	EventName       string `envconfig:"EVENT_NAME"`
	EventPath       string `envconfig:"EVENT_PATH"`
	Actor           string `envconfig:"ACTOR"`
	Workflow        string `envconfig:"WORKFLOW"`
	RunID           string `envconfig:"RUN_ID"`
	ServerURL       string `envconfig:"SERVER_URL"`
}

// FromEnv reads the trigger context from GITHUB_* variables. The pull
// request head is taken from the event payload file at GITHUB_EVENT_PATH.
func FromEnv() (*model.TriggerContext, error) {
	var env envContext
	if err := envconfig.Process("GITHUB", &env); err != nil {
		return nil, types.ErrInvalidContext.Wrap(goerr.Wrap(err, "failed to read GITHUB_* variables"))
	}

	trigger := &model.TriggerContext{
		Ref:       env.Ref,
		SHA:       env.SHA,
		EventName: env.EventName,
		Actor:     env.Actor,
		Workflow:  env.Workflow,
		RunID:     env.RunID,
		ServerURL: env.ServerURL,
	}
	if trigger.ServerURL == "" {
		trigger.ServerURL = model.DefaultServerURL
	}
	trigger.Owner, trigger.Repo = splitRepository(env.Repository, env.RepositoryOwner)

	if trigger.IsPullRequest() && env.EventPath != "" {
		raw, err := os.ReadFile(env.EventPath)
		if err != nil {
			return nil, types.ErrInvalidContext.Wrap(
				goerr.Wrap(err, "failed to read event payload").With("path", env.EventPath))
		}
		head, err := parsePullRequestHead(trigger.EventName, raw)
		if err != nil {
			return nil, err
		}
		trigger.PullRequest = head
	}

	return trigger, nil
}

type jsonContext struct {
	Repository      string          `json:"repository"`
	RepositoryOwner string          `json:"repository_owner"`
	Ref             string          `json:"ref"`
	SHA             string          `json:"sha"`
	EventName       string          `json:"event_name"`
	Actor           string          `json:"actor"`
	Workflow        string          `json:"workflow"`
	RunID           string          `json:"run_id"`
	ServerURL       string          `json:"server_url"`
	Event           json.RawMessage `json:"event"`
}

// FromJSON reads the trigger context from the output of `toJSON(github)`.
func FromJSON(raw []byte) (*model.TriggerContext, error) {
	var src jsonContext
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, types.ErrInvalidContext.Wrap(goerr.Wrap(err, "failed to parse github context"))
	}

	trigger := &model.TriggerContext{
		Ref:       src.Ref,
		SHA:       src.SHA,
		EventName: src.EventName,
		Actor:     src.Actor,
		Workflow:  src.Workflow,
		RunID:     src.RunID,
		ServerURL: src.ServerURL,
	}
	if trigger.ServerURL == "" {
		trigger.ServerURL = model.DefaultServerURL
	}
	trigger.Owner, trigger.Repo = splitRepository(src.Repository, src.RepositoryOwner)

	if trigger.IsPullRequest() && len(src.Event) > 0 {
		head, err := parsePullRequestHead(trigger.EventName, src.Event)
		if err != nil {
			return nil, err
		}
		trigger.PullRequest = head
	}

	return trigger, nil
}

// LoadEnvFile loads variables from a dotenv file. Variables already present
// in the environment are kept.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return types.ErrInvalidConfig.Wrap(goerr.Wrap(err, "failed to load env file").With("path", path))
	}
	return nil
}

func splitRepository(repository, owner string) (string, string) {
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 {
		return owner, ""
	}
	if owner == "" {
		owner = parts[0]
	}
	return owner, parts[1]
}

// parsePullRequestHead returns nil without error when the payload has no
// pull request, so that validation reports the missing payload.
func parsePullRequestHead(eventName string, raw []byte) (*model.PullRequestHead, error) {
	event, err := github.ParseWebHook(eventName, raw)
	if err != nil {
		return nil, types.ErrInvalidContext.Wrap(
			goerr.Wrap(err, "failed to parse event payload").With("event_name", eventName))
	}

	var pr *github.PullRequest
	switch ev := event.(type) {
	case *github.PullRequestEvent:
		pr = ev.GetPullRequest()
	case *github.PullRequestTargetEvent:
		pr = ev.GetPullRequest()
	}
	if pr == nil || pr.GetHead().GetRef() == "" {
		return nil, nil
	}

	return &model.PullRequestHead{
		Ref: pr.GetHead().GetRef(),
		SHA: pr.GetHead().GetSHA(),
	}, nil
}
