package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/invite"
)

// EmailNotifier шлёт подтверждения через SendGrid: письмо клиенту
// и отдельное — владелице салона.
type EmailNotifier struct {
	client     *sendgrid.Client
	fromEmail  string
	ownerEmail string
	logger     *zap.Logger
}

func NewEmailNotifier(apiKey, fromEmail, ownerEmail string, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client:     sendgrid.NewSendClient(apiKey),
		fromEmail:  fromEmail,
		ownerEmail: ownerEmail,
		logger:     logger,
	}
}

// SendClientConfirmation отправляет клиенту письмо с приглашением в календарь.
// Получатель без email (например телефон) — не ошибка, письмо просто не шлём.
func (n *EmailNotifier) SendClientConfirmation(ctx context.Context, recipient, details string, artifact *invite.Artifact) error {
	if !strings.Contains(recipient, "@") {
		n.logger.Info("Recipient has no email, skipping confirmation mail",
			zap.String("recipient", recipient))
		return nil
	}

	body := fmt.Sprintf(
		"היי! 👋\n\nשמחה שקבענו! הנה פרטי התור שלך:\n\n%s\n\nמצורף קובץ זימון ליומן.\nנתראה בקרוב! 🌸",
		details,
	)

	return n.send(ctx, recipient, "אישור תור - היפות של רותי", body, artifact)
}

// SendOwnerNotification сообщает владелице о новой брони
func (n *EmailNotifier) SendOwnerNotification(ctx context.Context, details string, artifact *invite.Artifact) error {
	if n.ownerEmail == "" {
		return nil
	}

	body := fmt.Sprintf(
		"היי רותי!\n\nיש לך תור חדש ביומן:\n\n%s\n\nמצורף קובץ הזימון.",
		details,
	)

	return n.send(ctx, n.ownerEmail, "📅 תור חדש נקבע! - היפות של רותי", body, artifact)
}

func (n *EmailNotifier) send(ctx context.Context, to, subject, body string, artifact *invite.Artifact) error {
	from := mail.NewEmail("היפות של רותי", n.fromEmail)
	message := mail.NewSingleEmailPlainText(from, subject, mail.NewEmail("", to), body)

	if artifact != nil {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString([]byte(artifact.ICS())))
		attachment.SetType("text/calendar")
		attachment.SetFilename(artifact.Filename())
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send mail to %s: status %d: %s", to, resp.StatusCode, resp.Body)
	}

	n.logger.Info("Notification sent", zap.String("to", to))
	return nil
}
