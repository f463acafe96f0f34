package model

import "time"

// BookingRecord — подтверждённая запись клиента на слот.
// Создаётся атомарно при коммите и больше не изменяется.
type BookingRecord struct {
	Slot        TimeSlot  `json:"slot"`
	ClientName  string    `json:"client_name"`
	ContactInfo string    `json:"contact_info"`
	Treatment   string    `json:"treatment"`
	CreatedAt   time.Time `json:"created_at"`
}
