package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/invite"
	"github.com/rutibeauty/salon_bot/internal/model"
	"github.com/rutibeauty/salon_bot/internal/notify"
	"github.com/rutibeauty/salon_bot/internal/repository"
)

// DefaultTreatment подставляется когда клиент не назвал услугу
const DefaultTreatment = "ייעוץ קוסמטי"

const (
	defaultMaxAlternatives = 3
	defaultLookaheadDays   = 7
)

type OutcomeStatus string

const (
	StatusConfirmed OutcomeStatus = "confirmed" // Бронь закоммичена
	StatusConflict  OutcomeStatus = "conflict"  // Слот занят, есть альтернативы
	StatusInvalid   OutcomeStatus = "invalid"   // Невалидный запрос
)

// Outcome — исход попытки бронирования. Замкнутое множество:
// подтверждение с записью, конфликт с альтернативами или отказ
// по невалидному вводу. Сбои внешних систем идут отдельной ошибкой.
type Outcome struct {
	Status       OutcomeStatus
	Record       *model.BookingRecord
	Alternatives []model.TimeSlot
	Reason       string
}

// BookingService — координатор бронирования: перепроверяет доступность,
// атомарно коммитит слот и запускает артефакт с уведомлениями.
type BookingService struct {
	availability    *AvailabilityService
	store           repository.BookingStore
	invites         *invite.Builder
	notifier        notify.Notifier
	logger          *zap.Logger
	maxAlternatives int
	lookaheadDays   int
}

func NewBookingService(
	availability *AvailabilityService,
	store repository.BookingStore,
	invites *invite.Builder,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		availability:    availability,
		store:           store,
		invites:         invites,
		notifier:        notifier,
		logger:          logger,
		maxAlternatives: defaultMaxAlternatives,
		lookaheadDays:   defaultLookaheadDays,
	}
}

// Book проводит попытку брони: валидация, перепроверка доступности,
// коммит. Два конкурентных запроса на один слот разруливаются атомарным
// InsertIfAbsent стора, проигравший уходит в конфликт с альтернативами.
func (s *BookingService) Book(
	ctx context.Context,
	date time.Time,
	start model.TimeOfDay,
	clientName, contactInfo, treatment string,
) (Outcome, error) {
	if date.IsZero() {
		return Outcome{Status: StatusInvalid, Reason: "date is missing"}, nil
	}
	if !s.availability.Hours().Contains(start) {
		return Outcome{
			Status: StatusInvalid,
			Reason: fmt.Sprintf("time %s is outside business hours", start),
		}, nil
	}
	if treatment == "" {
		treatment = DefaultTreatment
	}

	free, err := s.availability.AvailableSlots(ctx, date)
	if err != nil {
		return Outcome{}, err
	}

	slot, ok := findSlot(free, start)
	if !ok {
		return s.conflict(ctx, date, start), nil
	}

	record := model.BookingRecord{
		Slot:        slot,
		ClientName:  clientName,
		ContactInfo: contactInfo,
		Treatment:   treatment,
		CreatedAt:   time.Now(),
	}

	if err := s.store.InsertIfAbsent(ctx, record); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// Проиграли гонку: кто-то закоммитил слот между проверкой
			// и вставкой. Для клиента это обычный конфликт.
			return s.conflict(ctx, date, start), nil
		}
		return Outcome{}, fmt.Errorf("commit booking: %w", err)
	}

	s.logger.Info("Booking confirmed",
		zap.String("slot", record.Slot.Key()),
		zap.String("client", clientName),
		zap.String("treatment", treatment),
	)

	s.dispatchConfirmation(ctx, record)

	return Outcome{Status: StatusConfirmed, Record: &record}, nil
}

func (s *BookingService) conflict(ctx context.Context, date time.Time, start model.TimeOfDay) Outcome {
	return Outcome{
		Status:       StatusConflict,
		Alternatives: s.findAlternatives(ctx, date, start),
	}
}

// findAlternatives ищет до maxAlternatives ближайших свободных слотов:
// сначала остаток того же дня, затем день за днём вперёд в пределах
// lookaheadDays. Порядок строго хронологический; запрошенный слот
// в выдачу не попадает.
func (s *BookingService) findAlternatives(ctx context.Context, date time.Time, start model.TimeOfDay) []model.TimeSlot {
	var alternatives []model.TimeSlot

	if free, err := s.availability.AvailableSlots(ctx, date); err == nil {
		for _, slot := range free {
			if start.Before(slot.Start) {
				alternatives = append(alternatives, slot)
				if len(alternatives) >= s.maxAlternatives {
					return alternatives
				}
			}
		}
	}

	for days := 1; days <= s.lookaheadDays; days++ {
		free, err := s.availability.AvailableSlots(ctx, date.AddDate(0, 0, days))
		if err != nil {
			// День с недоступным календарём считаем занятым и идём дальше
			continue
		}
		for _, slot := range free {
			alternatives = append(alternatives, slot)
			if len(alternatives) >= s.maxAlternatives {
				return alternatives
			}
		}
	}

	return alternatives
}

// dispatchConfirmation строит артефакт и просит диспетчер разослать
// уведомления. Любой сбой здесь только логируется: слот уже
// закоммичен и отзывать его из-за почты нельзя.
func (s *BookingService) dispatchConfirmation(ctx context.Context, record model.BookingRecord) {
	artifact := s.invites.Build(record)

	details := fmt.Sprintf(
		"%s\n📅 %s\n🕐 %s\n👤 %s",
		record.Treatment,
		record.Slot.Date.Format("02.01.2006"),
		record.Slot.Start,
		record.ClientName,
	)

	if err := s.notifier.SendClientConfirmation(ctx, record.ContactInfo, details, artifact); err != nil {
		s.logger.Error("Failed to send client confirmation",
			zap.String("slot", record.Slot.Key()),
			zap.Error(err))
	}
	if err := s.notifier.SendOwnerNotification(ctx, details, artifact); err != nil {
		s.logger.Error("Failed to send owner notification",
			zap.String("slot", record.Slot.Key()),
			zap.Error(err))
	}
}

func findSlot(slots []model.TimeSlot, start model.TimeOfDay) (model.TimeSlot, bool) {
	for _, slot := range slots {
		if slot.Start == start {
			return slot, true
		}
	}
	return model.TimeSlot{}, false
}
