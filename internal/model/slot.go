package model

import (
	"fmt"
	"time"
)

// TimeOfDay — время начала слота без привязки к дате
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay разбирает строку вида "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before сравнивает два времени в пределах одного дня
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// TimeSlot — одна бронируемая единица времени. Immutable после создания.
type TimeSlot struct {
	Date     time.Time // полночь в бизнес-таймзоне
	Start    TimeOfDay
	Duration int // минуты
}

// StartTime возвращает момент начала слота в таймзоне даты
func (s TimeSlot) StartTime() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		s.Start.Hour, s.Start.Minute, 0, 0, s.Date.Location())
}

// EndTime возвращает момент окончания слота
func (s TimeSlot) EndTime() time.Time {
	return s.StartTime().Add(time.Duration(s.Duration) * time.Minute)
}

// Key — ключ слота для стора бронирований: "2025-12-02 10:00"
func (s TimeSlot) Key() string {
	return s.Date.Format("2006-01-02") + " " + s.Start.String()
}

// BusinessHours — фиксированное дневное расписание салона.
// Слоты нарезаются от OpenHour (включительно) до CloseHour (не включительно).
type BusinessHours struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
	Location    *time.Location
}

// Slots перечисляет все слоты рабочего дня для даты, по возрастанию времени.
// Считаем в настенных минутах, не в абсолютной длительности: в день
// перевода часов сетка не сдвигается и совпадает с Contains.
func (h BusinessHours) Slots(date time.Time) []TimeSlot {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, h.Location)
	var slots []TimeSlot
	for minutes := h.OpenHour * 60; minutes < h.CloseHour*60; minutes += h.SlotMinutes {
		slots = append(slots, TimeSlot{
			Date:     day,
			Start:    TimeOfDay{Hour: minutes / 60, Minute: minutes % 60},
			Duration: h.SlotMinutes,
		})
	}
	return slots
}

// Contains проверяет что время попадает в рабочие часы и выровнено по сетке
func (h BusinessHours) Contains(t TimeOfDay) bool {
	minutes := t.Hour*60 + t.Minute
	open := h.OpenHour * 60
	close := h.CloseHour * 60
	if minutes < open || minutes >= close {
		return false
	}
	return (minutes-open)%h.SlotMinutes == 0
}
