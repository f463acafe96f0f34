package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutibeauty/salon_bot/internal/model"
)

func testRecord(date time.Time, hour int) model.BookingRecord {
	return model.BookingRecord{
		Slot: model.TimeSlot{
			Date:     date,
			Start:    model.TimeOfDay{Hour: hour},
			Duration: 60,
		},
		ClientName:  "Dana",
		ContactInfo: "dana@example.com",
		Treatment:   "ייעוץ קוסמטי",
		CreatedAt:   time.Now(),
	}
}

func TestMemoryStore_InsertIfAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	date := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertIfAbsent(ctx, testRecord(date, 10)))

	err := store.InsertIfAbsent(ctx, testRecord(date, 10))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Другое время того же дня свободно
	assert.NoError(t, store.InsertIfAbsent(ctx, testRecord(date, 11)))
}

// Из N конкурентных вставок одного ключа проходит ровно одна
func TestMemoryStore_ConcurrentInsert(t *testing.T) {
	store := NewMemoryStore()
	date := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.InsertIfAbsent(context.Background(), testRecord(date, 10))
		}()
	}
	wg.Wait()
	close(results)

	var confirmed, taken int
	for err := range results {
		switch {
		case err == nil:
			confirmed++
		case errors.Is(err, ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, attempts-1, taken)
}

func TestMemoryStore_ListByDate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	date := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	otherDate := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertIfAbsent(ctx, testRecord(date, 15)))
	require.NoError(t, store.InsertIfAbsent(ctx, testRecord(date, 10)))
	require.NoError(t, store.InsertIfAbsent(ctx, testRecord(otherDate, 12)))

	records, err := store.ListByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Отсортированы по времени начала
	assert.Equal(t, "10:00", records[0].Slot.Start.String())
	assert.Equal(t, "15:00", records[1].Slot.Start.String())

	records, err = store.ListByDate(ctx, time.Date(2025, 12, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, records)
}
