package model

import (
	"log/slog"

	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/goerr"
	"github.com/slack-go/slack"
)

// MessageOptions are the user supplied parts of a notification.
type MessageOptions struct {
	Text     string `json:"text"`
	Color    string `json:"color"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	ThumbURL string `json:"thumb_url"`

	// Webhook only
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
	IconURL   string `json:"icon_url"`
}

// Credentials select the delivery mode. Exactly one of them is expected.
type Credentials struct {
	BotToken   string `json:"bot_token" masq:"secret"`
	WebhookURL string `json:"webhook_url" masq:"secret"`
}

func (x Credentials) IsWebhook() bool { return x.WebhookURL != "" }
func (x Credentials) IsBot() bool     { return x.WebhookURL == "" && x.BotToken != "" }

func (x Credentials) LogValue() slog.Value {
	mode := "none"
	switch {
	case x.IsWebhook():
		mode = "webhook"
	case x.IsBot():
		mode = "bot"
	}
	return slog.GroupValue(slog.String("mode", mode))
}

// Payload is the JSON body sent to Slack. The same shape is accepted by
// chat.postMessage, chat.update and incoming webhooks.
type Payload struct {
	Channel     string             `json:"channel,omitempty"`
	TS          types.MessageID    `json:"ts,omitempty"`
	Text        string             `json:"text,omitempty"`
	Blocks      []slack.Block      `json:"blocks,omitempty"`
	Attachments []slack.Attachment `json:"attachments,omitempty"`

	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
	IconURL   string `json:"icon_url,omitempty"`
}

// NotifyInput is everything a single invocation needs.
type NotifyInput struct {
	Channel     string
	MessageID   types.MessageID
	Credentials Credentials
	Options     MessageOptions
	Trigger     TriggerContext
}

func (x *NotifyInput) Validate() error {
	if x.Options.Text == "" {
		return types.ErrInvalidConfig.Wrap(goerr.New("expected `text` input"))
	}
	if x.Credentials.BotToken == "" && x.Credentials.WebhookURL == "" {
		return types.ErrInvalidConfig.Wrap(goerr.New("expected `bot-token` or `webhook-url` input"))
	}
	if x.Credentials.BotToken != "" && x.Credentials.WebhookURL != "" {
		return types.ErrInvalidConfig.Wrap(goerr.New("`bot-token` and `webhook-url` inputs are mutually exclusive"))
	}
	if x.MessageID != "" && x.Credentials.BotToken == "" {
		return types.ErrInvalidConfig.Wrap(goerr.New("expected `bot-token` since `message-id` input was passed").
			With("message_id", x.MessageID))
	}
	if x.Credentials.BotToken != "" && x.Channel == "" {
		return types.ErrInvalidConfig.Wrap(goerr.New("expected `channel` input with `bot-token`"))
	}
	return nil
}
