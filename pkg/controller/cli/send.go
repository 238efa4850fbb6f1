package cli

import (
	"context"

	"github.com/m-mizutani/actnotify/pkg/controller/cli/config"
	"github.com/m-mizutani/actnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/actnotify/pkg/infra/actions"
	"github.com/m-mizutani/actnotify/pkg/usecase"
	"github.com/m-mizutani/actnotify/pkg/utils/ctxutil"
	"github.com/m-mizutani/actnotify/pkg/utils/errutil"
	"github.com/urfave/cli/v2"
)

const outputMessageID = "message-id"

func cmdSend() *cli.Command {
	var (
		channel     string
		channelID   string
		messageID   string
		options     model.MessageOptions
		outputFile  string
		failOnError bool

		slackCfg  config.Slack
		githubCfg config.GitHub
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "channel",
			Usage:       "Slack channel name or ID. Required with --bot-token",
			Aliases:     []string{"c"},
			EnvVars:     config.InputEnv("channel"),
			Destination: &channel,
		},
		&cli.StringFlag{
			Name:        "channel-id",
			Usage:       "Same as --channel, used when --channel is empty",
			EnvVars:     config.InputEnv("channel-id"),
			Destination: &channelID,
		},
		&cli.StringFlag{
			Name:        "text",
			Usage:       "Message text in mrkdwn",
			Aliases:     []string{"t"},
			EnvVars:     config.InputEnv("text"),
			Destination: &options.Text,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Message title, workflow name is used by default",
			EnvVars:     config.InputEnv("title"),
			Destination: &options.Title,
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "Attachment color: good, warning, danger, a job status or a hex code",
			EnvVars:     config.InputEnv("color"),
			Destination: &options.Color,
		},
		&cli.StringFlag{
			Name:        "image-url",
			Usage:       "URL of an image shown in the message",
			EnvVars:     config.InputEnv("image-url"),
			Destination: &options.ImageURL,
		},
		&cli.StringFlag{
			Name:        "thumb-url",
			Usage:       "URL of a thumbnail shown in the message",
			EnvVars:     config.InputEnv("thumb-url"),
			Destination: &options.ThumbURL,
		},
		&cli.StringFlag{
			Name:        "username",
			Usage:       "Sender name, webhook only",
			EnvVars:     config.InputEnv("username"),
			Destination: &options.Username,
		},
		&cli.StringFlag{
			Name:        "icon-emoji",
			Usage:       "Sender icon emoji such as :rocket:, webhook only",
			EnvVars:     config.InputEnv("icon-emoji"),
			Destination: &options.IconEmoji,
		},
		&cli.StringFlag{
			Name:        "icon-url",
			Usage:       "Sender icon URL, webhook only",
			EnvVars:     config.InputEnv("icon-url"),
			Destination: &options.IconURL,
		},
		&cli.StringFlag{
			Name:        "message-id",
			Usage:       "ID of a message sent before. The message is updated instead of posting a new one",
			EnvVars:     config.InputEnv("message-id"),
			Destination: &messageID,
		},
		&cli.StringFlag{
			Name:        "github-output",
			Usage:       "File to write step outputs to",
			EnvVars:     []string{"GITHUB_OUTPUT"},
			Destination: &outputFile,
		},
		&cli.BoolFlag{
			Name:        "fail-on-error",
			Usage:       "Exit with non-zero status when the notification fails",
			EnvVars:     config.InputEnv("fail-on-error"),
			Destination: &failOnError,
			Value:       true,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)

	return &cli.Command{
		Name:  "send",
		Usage: "Send or update a Slack message about the current workflow run",
		Flags: flags,
		Action: func(c *cli.Context) error {
			ctx := c.Context
			host := actions.New(
				actions.WithWriter(c.App.Writer),
				actions.WithOutputFile(outputFile),
			)

			if channel == "" {
				channel = channelID
			}

			err := send(ctx, host, func(trigger *model.TriggerContext) interfaces.UseCases {
				return usecase.New(usecase.WithSlack(slackCfg.NewClient(trigger)))
			}, &model.NotifyInput{
				Channel:     channel,
				MessageID:   types.MessageID(messageID),
				Credentials: slackCfg.Credentials(),
				Options:     options,
			}, &githubCfg)
			if err == nil {
				return nil
			}

			host.SetFailed(err.Error())
			errutil.Handle(ctx, "failed to send notification", err)
			if failOnError {
				return &reportedError{err: err}
			}
			return nil
		},
	}
}

func send(ctx context.Context, host *actions.Host, newUseCases func(*model.TriggerContext) interfaces.UseCases, input *model.NotifyInput, githubCfg *config.GitHub) error {
	trigger, err := githubCfg.TriggerContext()
	if err != nil {
		return err
	}
	input.Trigger = *trigger

	logger := ctxutil.Logger(ctx).With("repo", trigger.Owner+"/"+trigger.Repo)
	ctx = ctxutil.WithLogger(ctx, logger)
	logger.Debug("trigger context", "trigger", trigger, "github", githubCfg)

	id, err := newUseCases(trigger).Notify(ctx, input)
	if err != nil {
		return err
	}

	if !input.Credentials.IsBot() {
		logger.Info("message sent via webhook")
		return nil
	}

	logger.Info("message sent", "channel", input.Channel, "message_id", id, "updated", input.MessageID != "")
	if id != "" {
		if err := host.SetOutput(outputMessageID, id.String()); err != nil {
			return err
		}
	}
	return nil
}
