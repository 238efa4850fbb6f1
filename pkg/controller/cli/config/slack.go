package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/actnotify/pkg/infra/slack"
	"github.com/urfave/cli/v2"
)

// Slack holds the delivery settings.
type Slack struct {
	botToken   string
	webhookURL string
	apiURL     string
	timeout    time.Duration
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bot-token",
			Usage:       "Slack bot token (xoxb-...), enables chat.postMessage and chat.update",
			EnvVars:     InputEnv("bot-token"),
			Destination: &x.botToken,
		},
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Slack incoming webhook URL",
			EnvVars:     InputEnv("webhook-url"),
			Destination: &x.webhookURL,
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Base URL of Slack Web API",
			EnvVars:     []string{"ACTNOTIFY_SLACK_API_URL"},
			Destination: &x.apiURL,
			Value:       slack.DefaultAPIURL,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout of the request to Slack, 0 means no timeout",
			EnvVars:     InputEnv("timeout"),
			Destination: &x.timeout,
			Value:       30 * time.Second,
		},
	}
}

func (x *Slack) Credentials() model.Credentials {
	return model.Credentials{
		BotToken:   x.botToken,
		WebhookURL: x.webhookURL,
	}
}

// NewClient builds a Slack client identifying the repository of trigger in
// its User-Agent.
func (x *Slack) NewClient(trigger *model.TriggerContext) *slack.Client {
	return slack.New(
		slack.WithAPIURL(x.apiURL),
		slack.WithTimeout(x.timeout),
		slack.WithUserAgent(types.UserAgent(trigger.Owner, trigger.Repo)),
	)
}

func (x *Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("credentials", x.Credentials()),
		slog.String("api_url", x.apiURL),
		slog.Duration("timeout", x.timeout),
	)
}
