package console

import (
	"context"

	"github.com/ryantriananda/fms/domain"
	"github.com/ryantriananda/fms/pkg/log"
)

// Notifier writes notifications to the application log. There is no real
// delivery channel in scope; this keeps the notification flow observable.
type Notifier struct {
	logger log.Logger
}

func NewNotifier(logger log.Logger) *Notifier {
	return &Notifier{logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, notifications []domain.Notification) []error {
	for _, notification := range notifications {
		n.logger.Info(ctx, "notification",
			"user", notification.User,
			"type", notification.Message.Type,
			"variables", notification.Message.Variables,
		)
	}
	return nil
}
