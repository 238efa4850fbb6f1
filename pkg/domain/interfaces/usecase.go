package interfaces

import (
	"context"

	"github.com/m-mizutani/actnotify/pkg/domain/model"
	"github.com/m-mizutani/actnotify/pkg/domain/types"
)

type UseCases interface {
	Notify(ctx context.Context, input *model.NotifyInput) (types.MessageID, error)
}
