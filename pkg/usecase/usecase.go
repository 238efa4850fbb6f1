package usecase

import "github.com/m-mizutani/actnotify/pkg/domain/interfaces"

type UseCases struct {
	slack interfaces.Slack
}

var _ interfaces.UseCases = &UseCases{}

func New(options ...Option) *UseCases {
	uc := &UseCases{}
	for _, option := range options {
		option(uc)
	}

	return uc
}

type Option func(*UseCases)

func WithSlack(slack interfaces.Slack) Option {
	return func(uc *UseCases) {
		uc.slack = slack
	}
}
