package usecase

import (
	"context"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
	"github.com/m-mizutani/actnotify/pkg/utils/ctxutil"
	"github.com/m-mizutani/goerr"
)

// Notify sends a single message and returns its ID. The ID is empty for
// webhook deliveries since incoming webhooks do not report it.
func (x *UseCases) Notify(ctx context.Context, input *model.NotifyInput) (types.MessageID, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	if x.slack == nil {
		return "", goerr.New("slack client is not configured")
	}

	payload, err := BuildPayload(input.Trigger, input.Options)
	if err != nil {
		return "", err
	}

	payload.Channel = input.Channel
	payload.TS = input.MessageID
	applyIdentity(ctx, payload, input)

	ctxutil.Logger(ctx).Debug("sending message",
		"credentials", input.Credentials,
		"channel", payload.Channel,
		"update", payload.TS != "",
		"payload", payload,
	)

	id, err := x.slack.Send(ctx, input.Credentials, payload)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send message").
			With("channel", payload.Channel).
			With("message_id", payload.TS)
	}

	if input.Credentials.IsWebhook() {
		return "", nil
	}
	return id, nil
}

// applyIdentity sets the sender name and icon. Only incoming webhooks honor
// them; icon emoji has higher priority than icon URL.
func applyIdentity(ctx context.Context, payload *model.Payload, input *model.NotifyInput) {
	opt := input.Options
	if opt.Username == "" && opt.IconEmoji == "" && opt.IconURL == "" {
		return
	}

	if !input.Credentials.IsWebhook() {
		ctxutil.Logger(ctx).Warn("username and icon inputs are ignored without `webhook-url`",
			"username", opt.Username,
			"icon_emoji", opt.IconEmoji,
			"icon_url", opt.IconURL,
		)
		return
	}

	payload.Username = opt.Username
	if opt.IconEmoji != "" {
		payload.IconEmoji = opt.IconEmoji
	} else if opt.IconURL != "" {
		payload.IconURL = opt.IconURL
	}
}
