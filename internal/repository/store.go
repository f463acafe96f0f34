package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rutibeauty/salon_bot/internal/model"
)

// ErrSlotTaken возвращается когда слот уже закоммичен другой бронью
var ErrSlotTaken = errors.New("slot already booked")

// BookingStore — стор закоммиченных броней, единственный разделяемый
// мутабельный ресурс системы. Вся запись идёт через InsertIfAbsent,
// поэтому гонка двух клиентов за один слот решается здесь, а не в
// сервисном слое.
//
// Бэкенды взаимозаменяемы: in-memory мапа или Postgres — выбор в main
// по конфигурации. Отмена брони — точка расширения, в интерфейс
// намеренно не входит.
type BookingStore interface {
	// InsertIfAbsent атомарно вставляет бронь по ключу (дата, время).
	// Если слот уже занят — ErrSlotTaken, стор не изменяется.
	InsertIfAbsent(ctx context.Context, record model.BookingRecord) error

	// ListByDate возвращает брони на дату по возрастанию времени
	ListByDate(ctx context.Context, date time.Time) ([]model.BookingRecord, error)
}
