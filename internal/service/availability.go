package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/calendar"
	"github.com/rutibeauty/salon_bot/internal/model"
	"github.com/rutibeauty/salon_bot/internal/repository"
)

// ErrUpstream — внешний календарь недоступен или отдал мусор.
// Доступность при этом fail-closed: день считается полностью занятым,
// лучше не показать свободный слот, чем продать его дважды.
var ErrUpstream = errors.New("calendar source unavailable")

// AvailabilityService отвечает на один вопрос: какие слоты свободны
// в указанную дату. Ответ считается заново на каждый запрос — внешний
// календарь могут менять мимо нас, кешировать его нельзя.
type AvailabilityService struct {
	hours  model.BusinessHours
	source calendar.EventSource
	store  repository.BookingStore
	logger *zap.Logger
}

func NewAvailabilityService(
	hours model.BusinessHours,
	source calendar.EventSource,
	store repository.BookingStore,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		hours:  hours,
		source: source,
		store:  store,
		logger: logger,
	}
}

// Hours возвращает рабочие часы салона
func (s *AvailabilityService) Hours() model.BusinessHours {
	return s.hours
}

// AvailableSlots возвращает свободные слоты даты по возрастанию времени:
// сетка рабочих часов минус события внешнего календаря минус локальные
// брони, ещё не доехавшие до календаря. Событие на весь день закрывает
// дату целиком, без перебора слотов.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, date time.Time) ([]model.TimeSlot, error) {
	events, err := s.source.Events(ctx, date)
	if err != nil {
		s.logger.Warn("Calendar source failed, treating day as fully booked",
			zap.String("date", date.Format("2006-01-02")),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	for _, ev := range events {
		if ev.AllDay {
			return nil, nil
		}
	}

	booked, err := s.store.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("Booking store failed, treating day as fully booked",
			zap.String("date", date.Format("2006-01-02")),
			zap.Error(err))
		return nil, fmt.Errorf("list local bookings: %w", err)
	}

	bookedKeys := make(map[string]bool, len(booked))
	for _, rec := range booked {
		bookedKeys[rec.Slot.Key()] = true
	}

	var free []model.TimeSlot
	for _, slot := range s.hours.Slots(date) {
		if bookedKeys[slot.Key()] {
			continue
		}
		if blockedByEvent(slot, events) {
			continue
		}
		free = append(free, slot)
	}

	return free, nil
}

func blockedByEvent(slot model.TimeSlot, events []model.CalendarEvent) bool {
	for _, ev := range events {
		if ev.Overlaps(slot.StartTime(), slot.EndTime()) {
			return true
		}
	}
	return false
}
