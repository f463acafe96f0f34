package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/invite"
	"github.com/rutibeauty/salon_bot/internal/model"
	"github.com/rutibeauty/salon_bot/internal/repository"
)

// recordingNotifier запоминает вызовы и умеет падать по заказу
type recordingNotifier struct {
	mu     sync.Mutex
	client int
	owner  int
	fail   bool
}

func (n *recordingNotifier) SendClientConfirmation(_ context.Context, _, _ string, _ *invite.Artifact) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.client++
	if n.fail {
		return errors.New("smtp is down")
	}
	return nil
}

func (n *recordingNotifier) SendOwnerNotification(_ context.Context, _ string, _ *invite.Artifact) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.owner++
	if n.fail {
		return errors.New("smtp is down")
	}
	return nil
}

func newTestBooking(t *testing.T, source *fakeSource, notifier *recordingNotifier) *BookingService {
	t.Helper()
	store := repository.NewMemoryStore()
	availability := NewAvailabilityService(testHours(t), source, store, zap.NewNop())
	return NewBookingService(
		availability,
		store,
		invite.NewBuilder("ruti@example.com"),
		notifier,
		zap.NewNop(),
	)
}

func TestBook_Confirmed(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestBooking(t, &fakeSource{}, notifier)

	outcome, err := svc.Book(context.Background(),
		day(t, "2025-12-02"), model.TimeOfDay{Hour: 10}, "Dana", "dana@example.com", "")
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, outcome.Status)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, "2025-12-02 10:00", outcome.Record.Slot.Key())
	assert.Equal(t, DefaultTreatment, outcome.Record.Treatment)
	assert.Equal(t, 1, notifier.client)
	assert.Equal(t, 1, notifier.owner)
}

// Повторная бронь того же слота: подтверждение первому, второму —
// конфликт с альтернативами начиная с 11:00 того же дня
func TestBook_DoubleBookingConflicts(t *testing.T) {
	svc := newTestBooking(t, &fakeSource{}, &recordingNotifier{})
	ctx := context.Background()
	d := day(t, "2025-12-02")

	first, err := svc.Book(ctx, d, model.TimeOfDay{Hour: 10}, "Dana", "dana@example.com", "")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, first.Status)

	second, err := svc.Book(ctx, d, model.TimeOfDay{Hour: 10}, "Noa", "noa@example.com", "")
	require.NoError(t, err)
	require.Equal(t, StatusConflict, second.Status)

	require.Len(t, second.Alternatives, 3)
	assert.Equal(t, "2025-12-02 11:00", second.Alternatives[0].Key())
	assert.Equal(t, "2025-12-02 12:00", second.Alternatives[1].Key())
	assert.Equal(t, "2025-12-02 13:00", second.Alternatives[2].Key())
}

// Центральное свойство всей подсистемы: из конкурентных попыток
// на один слот подтверждается ровно одна
func TestBook_ConcurrentSameSlot(t *testing.T) {
	svc := newTestBooking(t, &fakeSource{}, &recordingNotifier{})
	d := day(t, "2025-12-02")

	type result struct {
		outcome Outcome
		err     error
	}

	const attempts = 20
	results := make(chan result, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := svc.Book(context.Background(),
				d, model.TimeOfDay{Hour: 14}, "Client", "client@example.com", "")
			results <- result{outcome: outcome, err: err}
		}()
	}
	wg.Wait()
	close(results)

	var confirmed, conflicted int
	for r := range results {
		require.NoError(t, r.err)
		outcome := r.outcome
		switch outcome.Status {
		case StatusConfirmed:
			confirmed++
		case StatusConflict:
			conflicted++
			assert.NotContains(t, keysOf(outcome.Alternatives), "2025-12-02 14:00")
		default:
			t.Fatalf("unexpected outcome %q", outcome.Status)
		}
	}

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, attempts-1, conflicted)
}

func TestBook_InvalidInput(t *testing.T) {
	svc := newTestBooking(t, &fakeSource{}, &recordingNotifier{})
	ctx := context.Background()
	d := day(t, "2025-12-02")

	tests := []struct {
		name  string
		date  time.Time
		start model.TimeOfDay
	}{
		{"нет даты", time.Time{}, model.TimeOfDay{Hour: 10}},
		{"до открытия", d, model.TimeOfDay{Hour: 8}},
		{"после закрытия", d, model.TimeOfDay{Hour: 19}},
		{"мимо сетки слотов", d, model.TimeOfDay{Hour: 10, Minute: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := svc.Book(ctx, tt.date, tt.start, "Dana", "dana@example.com", "")
			require.NoError(t, err)
			assert.Equal(t, StatusInvalid, outcome.Status)
			assert.NotEmpty(t, outcome.Reason)
		})
	}
}

// Когда остаток дня занят, альтернативы перетекают на следующие дни,
// сохраняя хронологический порядок
func TestBook_AlternativesSpillToNextDays(t *testing.T) {
	d := day(t, "2025-12-02")
	// 18:00 — последний слот дня; всё после запрошенных 17:00 занято событием
	source := &fakeSource{events: map[string][]model.CalendarEvent{
		"2025-12-02": {{
			Start: d.Add(17 * time.Hour),
			End:   d.Add(19 * time.Hour),
		}},
	}}
	svc := newTestBooking(t, source, &recordingNotifier{})

	outcome, err := svc.Book(context.Background(),
		d, model.TimeOfDay{Hour: 17}, "Dana", "dana@example.com", "")
	require.NoError(t, err)
	require.Equal(t, StatusConflict, outcome.Status)

	require.Len(t, outcome.Alternatives, 3)
	assert.Equal(t, "2025-12-03 10:00", outcome.Alternatives[0].Key())
	assert.Equal(t, "2025-12-03 11:00", outcome.Alternatives[1].Key())
	assert.Equal(t, "2025-12-03 12:00", outcome.Alternatives[2].Key())
}

func TestBook_UpstreamFailureSurfacesError(t *testing.T) {
	svc := newTestBooking(t, &fakeSource{err: errors.New("timeout")}, &recordingNotifier{})

	_, err := svc.Book(context.Background(),
		day(t, "2025-12-02"), model.TimeOfDay{Hour: 10}, "Dana", "dana@example.com", "")
	assert.ErrorIs(t, err, ErrUpstream)
}

// Сбой рассылки не отменяет бронь: слот остаётся закоммиченным
func TestBook_NotifierFailureKeepsBooking(t *testing.T) {
	svc := newTestBooking(t, &fakeSource{}, &recordingNotifier{fail: true})
	ctx := context.Background()
	d := day(t, "2025-12-02")

	outcome, err := svc.Book(ctx, d, model.TimeOfDay{Hour: 10}, "Dana", "dana@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, outcome.Status)

	retry, err := svc.Book(ctx, d, model.TimeOfDay{Hour: 10}, "Noa", "noa@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, StatusConflict, retry.Status)
}

func keysOf(slots []model.TimeSlot) []string {
	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		keys = append(keys, slot.Key())
	}
	return keys
}
