package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/controller/state"
	"github.com/rutibeauty/salon_bot/internal/tools"
)

// HandleTextMessage обрабатывает обычный текст по текущему шагу диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	// Команды разруливаются своими обработчиками
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID

	switch h.stateManager.GetState(telegramID) {
	case state.StateBookingDateTime:
		h.handleBookingDateTime(ctx, b, update)
	case state.StateBookingName:
		h.handleBookingName(ctx, b, update)
	case state.StateBookingContact:
		h.handleBookingContact(ctx, b, update)
	default:
		h.reply(ctx, b, update.Message.Chat.ID,
			"אפשר לבדוק שעות עם /slots מחר, או לקבוע תור עם /book 🙂")
	}
}

func (h *Handlers) handleBookingDateTime(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	text := strings.TrimSpace(update.Message.Text)

	// Проверяем прямо сейчас, чтобы не гонять клиента по всему
	// диалогу ради непонятной даты
	res := h.tools.ResolveDateTime(text)
	if !res.HasDate {
		h.reply(ctx, b, update.Message.Chat.ID,
			"לא הצלחתי להבין את התאריך 🤔 אפשר לכתוב למשל: מחר בשעה 3, או יום חמישי ב-14:00")
		return
	}
	if !res.HasTime {
		h.reply(ctx, b, update.Message.Chat.ID,
			"הבנתי את היום, אבל באיזו שעה? אפשר לכתוב למשל: "+text+" בשעה 14:00")
		return
	}

	h.stateManager.SetData(telegramID, dataKeyDateTime, text)
	h.stateManager.SetState(telegramID, state.StateBookingName)

	h.reply(ctx, b, update.Message.Chat.ID, "מעולה! על איזה שם לרשום את התור?")
}

func (h *Handlers) handleBookingName(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)
	if name == "" {
		h.reply(ctx, b, update.Message.Chat.ID, "על איזה שם לרשום את התור?")
		return
	}

	h.stateManager.SetData(telegramID, dataKeyName, name)
	h.stateManager.SetState(telegramID, state.StateBookingContact)

	h.reply(ctx, b, update.Message.Chat.ID,
		"ואיך ניצור איתך קשר? טלפון או מייל 📱\n(למייל יישלח גם זימון ליומן)")
}

func (h *Handlers) handleBookingContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	contact := strings.TrimSpace(update.Message.Text)
	if contact == "" {
		h.reply(ctx, b, update.Message.Chat.ID, "איך ניצור איתך קשר? טלפון או מייל")
		return
	}

	datetimeText, ok := h.stateManager.GetData(telegramID, dataKeyDateTime)
	if !ok {
		// Состояние потеряно (рестарт процесса) — начинаем заново
		h.logger.Warn("Booking dialog lost its datetime",
			zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.reply(ctx, b, update.Message.Chat.ID,
			"משהו השתבש בדרך 😔 בואי נתחיל מחדש עם /book")
		return
	}
	name, _ := h.stateManager.GetData(telegramID, dataKeyName)

	answer, kind := h.tools.Book(ctx, datetimeText, name, contact)

	// Слот мог оказаться занят — оставляем клиента на шаге даты,
	// чтобы она сразу написала другое время
	if kind == tools.ReplyConflict {
		h.stateManager.SetState(telegramID, state.StateBookingDateTime)
	} else {
		h.stateManager.ClearState(telegramID)
	}

	h.reply(ctx, b, update.Message.Chat.ID, answer)
}
