package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutibeauty/salon_bot/internal/model"
)

func sampleRecord(t *testing.T) model.BookingRecord {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return model.BookingRecord{
		Slot: model.TimeSlot{
			Date:     time.Date(2025, 12, 2, 0, 0, 0, 0, loc),
			Start:    model.TimeOfDay{Hour: 10},
			Duration: 60,
		},
		ClientName:  "Dana Levi",
		ContactInfo: "dana@example.com",
		Treatment:   "ייעוץ קוסמטי",
		CreatedAt:   time.Now(),
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("ruti@example.com")
	record := sampleRecord(t)

	artifact := b.Build(record)

	assert.NotEmpty(t, artifact.UID)
	assert.Equal(t, "ייעוץ קוסמטי - Dana Levi", artifact.Summary)
	assert.Equal(t, "dana@example.com", artifact.Attendee)
	assert.Equal(t, record.Slot.StartTime(), artifact.Start)
	assert.Equal(t, record.Slot.EndTime(), artifact.End)
	assert.Equal(t, time.Hour, artifact.End.Sub(artifact.Start))
}

// UID уникален для каждой брони — повторная бронь того же слота
// после отмены не породит коллизию идентификаторов
func TestBuilder_UniqueUIDs(t *testing.T) {
	b := NewBuilder("ruti@example.com")
	record := sampleRecord(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		uid := b.Build(record).UID
		assert.False(t, seen[uid], "duplicate UID %s", uid)
		seen[uid] = true
	}
}

func TestArtifact_ICS(t *testing.T) {
	b := NewBuilder("ruti@example.com")
	artifact := b.Build(sampleRecord(t))

	serialized := artifact.ICS()

	assert.Contains(t, serialized, "BEGIN:VCALENDAR")
	assert.Contains(t, serialized, "UID:"+artifact.UID)
	assert.Contains(t, serialized, "DTSTART")
	assert.Contains(t, serialized, "DTEND")
	assert.Contains(t, serialized, "SUMMARY")
	assert.Contains(t, serialized, "DESCRIPTION")
	assert.Contains(t, serialized, "ORGANIZER:mailto:ruti@example.com")
	assert.Contains(t, serialized, "ATTENDEE")
	assert.Contains(t, serialized, "BEGIN:VALARM")
	assert.Contains(t, serialized, "ACTION:DISPLAY")
	assert.Contains(t, serialized, "TRIGGER:-PT15M")
}

func TestBuilder_NonEmailContactHasNoAttendee(t *testing.T) {
	b := NewBuilder("ruti@example.com")
	record := sampleRecord(t)
	record.ContactInfo = "+972-50-0000000"

	artifact := b.Build(record)
	assert.Empty(t, artifact.Attendee)
	assert.NotContains(t, artifact.ICS(), "ATTENDEE")
}
