package interfaces

import (
	"context"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
)

//go:generate moq -out ../mock/infra.go -pkg mock . Slack

type Slack interface {
	Send(ctx context.Context, cred model.Credentials, payload *model.Payload) (types.MessageID, error)
}
