package notifiers

import (
	"context"
	"errors"

	"github.com/ryantriananda/fms/domain"
	"github.com/ryantriananda/fms/pkg/log"
	"github.com/ryantriananda/fms/plugins/notifiers/console"
)

type Client interface {
	Notify(context.Context, []domain.Notification) []error
}

const (
	ProviderTypeConsole = "console"
)

type Config struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=console"`
}

func NewClient(config *Config, logger log.Logger) (Client, error) {
	if config.Provider == "" || config.Provider == ProviderTypeConsole {
		return console.NewNotifier(logger), nil
	}

	return nil, errors.New("invalid notifier provider type")
}
