package invite

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/rutibeauty/salon_bot/internal/model"
)

// Artifact — самодостаточное календарное событие для подтверждённой
// брони. Сериализуется в стандартный ICS и уходит внешнему
// диспетчеру уведомлений как вложение.
type Artifact struct {
	UID         string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Organizer   string
	Attendee    string
}

// Builder собирает артефакты. UID всегда случайный: даже если после
// отмены тот же слот бронируется заново, идентификаторы не совпадут.
type Builder struct {
	organizerEmail string
}

func NewBuilder(organizerEmail string) *Builder {
	return &Builder{organizerEmail: organizerEmail}
}

// Build создаёт артефакт для записи о брони
func (b *Builder) Build(record model.BookingRecord) *Artifact {
	attendee := ""
	if strings.Contains(record.ContactInfo, "@") {
		attendee = record.ContactInfo
	}

	return &Artifact{
		UID:     uuid.NewString() + "@rutibeauty",
		Summary: fmt.Sprintf("%s - %s", record.Treatment, record.ClientName),
		Description: fmt.Sprintf(
			"טיפול: %s\nלקוחה: %s\nאיש קשר: %s",
			record.Treatment, record.ClientName, record.ContactInfo,
		),
		Start:     record.Slot.StartTime(),
		End:       record.Slot.EndTime(),
		Organizer: b.organizerEmail,
		Attendee:  attendee,
	}
}

// ICS сериализует артефакт в RFC 5545, с DISPLAY-напоминанием
// за 15 минут до начала
func (a *Artifact) ICS() string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)
	cal.SetProductId("-//Ruti Beauty//Booking Bot//IL")

	ev := cal.AddEvent(a.UID)
	ev.SetDtStampTime(time.Now())
	ev.SetStartAt(a.Start)
	ev.SetEndAt(a.End)
	ev.SetSummary(a.Summary)
	ev.SetDescription(a.Description)
	if a.Organizer != "" {
		ev.SetOrganizer("mailto:" + a.Organizer)
	}
	if a.Attendee != "" {
		ev.AddAttendee(a.Attendee)
	}

	alarm := ev.AddAlarm()
	alarm.SetAction(ics.ActionDisplay)
	alarm.SetTrigger("-PT15M")

	return cal.Serialize()
}

// Filename — имя файла вложения для диспетчера
func (a *Artifact) Filename() string {
	return fmt.Sprintf("appointment_%s.ics", a.Start.Format("2006-01-02_1504"))
}
