package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/controller/state"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	welcomeText := "היי! 👋 ברוכה הבאה להיפות של רותי 🌸\n\n" +
		"אפשר לקבוע תור ישירות כאן:\n" +
		"/slots — לבדוק שעות פנויות (למשל: /slots מחר)\n" +
		"/book — לקבוע תור\n" +
		"/help — עזרה\n\n" +
		"נתראה בקרוב! 💅"

	h.reply(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "ככה זה עובד:\n\n" +
		"🕐 /slots מחר — אראה לך אילו שעות פנויות\n" +
		"אפשר לכתוב תאריך איך שנוח: מחר, יום חמישי, 2.12\n\n" +
		"📅 /book — נקבע תור ביחד, שאלה-שאלה\n\n" +
		"❌ /cancel — לבטל את מה שהתחלנו"

	h.reply(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel — отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.reply(ctx, b, update.Message.Chat.ID, "אין משהו לבטל 🙂 אפשר להתחיל עם /book")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.reply(ctx, b, update.Message.Chat.ID, "ביטלתי ✅ מתחילים מחדש עם /book מתי שנוח")
}

// HandleSlots обрабатывает "/slots <текст даты>"
func (h *Handlers) HandleSlots(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	dateText := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/slots"))
	if dateText == "" {
		h.reply(ctx, b, update.Message.Chat.ID, "לאיזה יום לבדוק? למשל: /slots מחר")
		return
	}

	h.reply(ctx, b, update.Message.Chat.ID, h.tools.CheckSlots(ctx, dateText))
}

// HandleBook начинает диалог бронирования
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateBookingDateTime)

	h.reply(ctx, b, update.Message.Chat.ID,
		"יופי! למתי לקבוע לך תור? 🗓\nלמשל: מחר בשעה 3, או יום חמישי ב-14:00")
}

func (h *Handlers) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
