package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/dateparse"
	"github.com/rutibeauty/salon_bot/internal/model"
	"github.com/rutibeauty/salon_bot/internal/service"
)

// Tools — граница между ядром и разговорным слоем (бот или агент).
// Три операции; любой сбой превращается в осмысленный текст для
// клиента, наружу никогда не летит ни паника, ни сырая ошибка —
// вызывающая сторона обязана всегда ответить человеку.
type Tools struct {
	parser       *dateparse.Parser
	availability *service.AvailabilityService
	booking      *service.BookingService
	loc          *time.Location
	logger       *zap.Logger
	now          func() time.Time
}

func New(
	parser *dateparse.Parser,
	availability *service.AvailabilityService,
	booking *service.BookingService,
	loc *time.Location,
	logger *zap.Logger,
) *Tools {
	return &Tools{
		parser:       parser,
		availability: availability,
		booking:      booking,
		loc:          loc,
		logger:       logger,
		now:          time.Now,
	}
}

// ResolveDateTime разбирает свободный текст в (дату, время).
// Отсутствующие поля — сигнал переспросить клиента, не угадывать.
func (t *Tools) ResolveDateTime(text string) dateparse.ParseResult {
	return t.parser.Parse(text, t.now().In(t.loc))
}

// CheckSlots возвращает свободные слоты на дату из текста клиента
func (t *Tools) CheckSlots(ctx context.Context, dateText string) string {
	res := t.ResolveDateTime(dateText)
	if !res.HasDate {
		return "לא הצלחתי להבין את התאריך 🤔 אפשר לכתוב למשל: מחר, יום חמישי, או 2.12"
	}

	slots, err := t.availability.AvailableSlots(ctx, res.Date)
	if err != nil {
		t.logger.Warn("Availability check failed", zap.Error(err))
		return "היומן לא זמין כרגע 😔 נסי שוב בעוד כמה דקות"
	}

	dateLabel := FormatDateHebrew(res.Date)
	if len(slots) == 0 {
		return fmt.Sprintf("אין תורים פנויים ב%s 😔 רוצה לנסות תאריך אחר?", dateLabel)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "השעות הפנויות ב%s:\n", dateLabel)
	for _, slot := range slots {
		fmt.Fprintf(&sb, "  • %s\n", slot.Start)
	}
	sb.WriteString("\nאיזו שעה מתאימה לך?")
	return sb.String()
}

// ReplyKind классифицирует ответ Book для транспортного слоя:
// текст остаётся контрактом для клиента, а по kind транспорт решает,
// что делать с диалогом (например оставить шаг выбора времени
// при конфликте). Текст сообщения менять можно, kind — нет.
type ReplyKind int

const (
	ReplyConfirmed ReplyKind = iota
	ReplyConflict
	ReplyClarify
	ReplyInvalid
	ReplyFailed
)

// Book разбирает текст с датой и временем и проводит бронь
func (t *Tools) Book(ctx context.Context, datetimeText, clientName, contactInfo string) (string, ReplyKind) {
	res := t.ResolveDateTime(datetimeText)
	if !res.HasDate {
		return "לא הבנתי לאיזה תאריך לקבוע 🤔 אפשר לכתוב למשל: מחר בשעה 3", ReplyClarify
	}
	if !res.HasTime {
		return fmt.Sprintf("הבנתי שמדובר ב%s, אבל לא הבנתי את השעה. באיזו שעה נוח לך?",
			FormatDateHebrew(res.Date)), ReplyClarify
	}

	outcome, err := t.booking.Book(ctx, res.Date, res.Time, clientName, contactInfo, "")
	if err != nil {
		t.logger.Error("Booking failed", zap.Error(err))
		if errors.Is(err, service.ErrUpstream) {
			return "היומן לא זמין כרגע 😔 נסי שוב בעוד כמה דקות", ReplyFailed
		}
		return "משהו השתבש אצלנו 😔 נסי שוב מאוחר יותר", ReplyFailed
	}

	switch outcome.Status {
	case service.StatusConfirmed:
		msg := fmt.Sprintf("נקבע! %s בשעה %s ✅",
			FormatDateHebrew(outcome.Record.Slot.Date), outcome.Record.Slot.Start)
		if strings.Contains(contactInfo, "@") {
			msg += "\nזימון ליומן נשלח למייל שלך 📧"
		}
		return msg, ReplyConfirmed

	case service.StatusConflict:
		return conflictMessage(res.Date, res.Time, outcome.Alternatives), ReplyConflict

	case service.StatusInvalid:
		return fmt.Sprintf("השעה %s לא בשעות הפעילות שלנו. אנחנו עובדות %02d:00-%02d:00",
			res.Time, t.availability.Hours().OpenHour, t.availability.Hours().CloseHour), ReplyInvalid

	default:
		t.logger.Error("Unknown booking outcome", zap.String("status", string(outcome.Status)))
		return "משהו השתבש אצלנו 😔 נסי שוב מאוחר יותר", ReplyFailed
	}
}

func conflictMessage(date time.Time, start model.TimeOfDay, alternatives []model.TimeSlot) string {
	header := fmt.Sprintf("מצטערת, השעה %s ב%s תפוסה 😔", start, FormatDateHebrew(date))
	if len(alternatives) == 0 {
		return header + "\nואין תורים פנויים בימים הקרובים. אולי ננסה שבוע אחר?"
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\nהשעות הקרובות הפנויות:\n")
	for _, slot := range alternatives {
		fmt.Fprintf(&sb, "  • %s בשעה %s\n", FormatDateHebrew(slot.Date), slot.Start)
	}
	sb.WriteString("\nאשמח לקבוע לך באחת מהשעות האלה!")
	return sb.String()
}
