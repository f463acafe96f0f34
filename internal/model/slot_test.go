package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHours(t *testing.T) BusinessHours {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return BusinessHours{OpenHour: 10, CloseHour: 19, SlotMinutes: 60, Location: loc}
}

func TestBusinessHoursSlots(t *testing.T) {
	hours := testHours(t)
	day := time.Date(2025, 12, 2, 0, 0, 0, 0, hours.Location)

	slots := hours.Slots(day)
	require.Len(t, slots, 9)
	assert.Equal(t, "10:00", slots[0].Start.String())
	assert.Equal(t, "18:00", slots[8].Start.String())

	// Каждый слот сетки проходит собственную проверку рабочих часов
	for _, slot := range slots {
		assert.True(t, hours.Contains(slot.Start), "slot %s", slot.Start)
	}
}

// Сетка считается по настенным часам: в дни перевода стрелок она
// не сдвигается. 28.03.2025 — переход Израиля на летнее время,
// 26.10.2025 — обратно.
func TestBusinessHoursSlots_DSTTransition(t *testing.T) {
	hours := testHours(t)

	for _, date := range []string{"2025-03-28", "2025-10-26"} {
		t.Run(date, func(t *testing.T) {
			day, err := time.ParseInLocation("2006-01-02", date, hours.Location)
			require.NoError(t, err)

			slots := hours.Slots(day)
			require.Len(t, slots, 9)
			assert.Equal(t, "10:00", slots[0].Start.String())
			assert.Equal(t, "18:00", slots[8].Start.String())
			for _, slot := range slots {
				assert.True(t, hours.Contains(slot.Start), "slot %s", slot.Start)
			}
		})
	}
}

func TestBusinessHoursContains(t *testing.T) {
	hours := testHours(t)

	assert.True(t, hours.Contains(TimeOfDay{Hour: 10}))
	assert.True(t, hours.Contains(TimeOfDay{Hour: 18}))
	assert.False(t, hours.Contains(TimeOfDay{Hour: 9}))
	assert.False(t, hours.Contains(TimeOfDay{Hour: 19}))
	// Мимо сетки слотов
	assert.False(t, hours.Contains(TimeOfDay{Hour: 10, Minute: 30}))
}
