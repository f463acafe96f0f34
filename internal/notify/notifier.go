package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/invite"
)

// Notifier — внешний диспетчер уведомлений. Ошибки доставки
// не фатальны: бронь остаётся закоммиченной, даже если письмо
// не ушло — координатор только логирует сбой.
type Notifier interface {
	// SendClientConfirmation отправляет клиенту подтверждение с вложенным
	// календарным артефактом (если артефакт есть)
	SendClientConfirmation(ctx context.Context, recipient, details string, artifact *invite.Artifact) error

	// SendOwnerNotification сообщает владелице салона о новой брони
	SendOwnerNotification(ctx context.Context, details string, artifact *invite.Artifact) error
}

// NoopNotifier используется когда почтовые креды не настроены:
// бронирование работает, уведомления просто логируются и пропускаются.
type NoopNotifier struct {
	logger *zap.Logger
}

func NewNoopNotifier(logger *zap.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) SendClientConfirmation(_ context.Context, recipient, _ string, _ *invite.Artifact) error {
	n.logger.Warn("Email credentials not set, skipping client confirmation",
		zap.String("recipient", recipient))
	return nil
}

func (n *NoopNotifier) SendOwnerNotification(_ context.Context, _ string, _ *invite.Artifact) error {
	n.logger.Warn("Email credentials not set, skipping owner notification")
	return nil
}
