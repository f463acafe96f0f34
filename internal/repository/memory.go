package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rutibeauty/salon_bot/internal/model"
)

// MemoryStore держит брони в памяти процесса. Дефолтный бэкенд:
// брони авторитетны на время жизни процесса, переживать рестарт
// им не обязательно.
type MemoryStore struct {
	mu    sync.Mutex
	byKey map[string]model.BookingRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byKey: make(map[string]model.BookingRecord),
	}
}

// InsertIfAbsent — атомарный insert-if-absent под одним мьютексом.
// Из двух конкурентных вставок одного ключа выигрывает ровно одна.
func (s *MemoryStore) InsertIfAbsent(_ context.Context, record model.BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := record.Slot.Key()
	if _, exists := s.byKey[key]; exists {
		return ErrSlotTaken
	}
	s.byKey[key] = record
	return nil
}

// ListByDate возвращает брони на дату по возрастанию времени
func (s *MemoryStore) ListByDate(_ context.Context, date time.Time) ([]model.BookingRecord, error) {
	day := date.Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	var records []model.BookingRecord
	for _, rec := range s.byKey {
		if rec.Slot.Date.Format("2006-01-02") == day {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Slot.Start.Before(records[j].Slot.Start)
	})

	return records, nil
}
