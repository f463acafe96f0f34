package model

import "time"

// CalendarEvent — событие из внешнего календаря (ICS-фид салона).
// AllDay события блокируют весь день целиком.
type CalendarEvent struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Overlaps проверяет пересечение события с интервалом [start, end)
func (e CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}
