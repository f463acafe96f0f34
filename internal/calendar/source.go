package calendar

import (
	"context"
	"time"

	"github.com/rutibeauty/salon_bot/internal/model"
)

// EventSource — внешний календарь салона. Для нас он read-only:
// мы спрашиваем занятость, но ничего туда не пишем. Каждый ответ —
// снимок, который может устареть сразу после получения; финальную
// корректность обеспечивает коммит в сторе броней, а не свежесть фида.
type EventSource interface {
	// Events возвращает события, пересекающие указанную дату.
	// Времена нормализованы в бизнес-таймзону.
	Events(ctx context.Context, date time.Time) ([]model.CalendarEvent, error)
}
