package state

// UserState — шаг диалога бронирования, в котором находится клиент
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Шаги диалога /book
	StateBookingDateTime UserState = "booking_datetime"
	StateBookingName     UserState = "booking_name"
	StateBookingContact  UserState = "booking_contact"
)

// UserData хранит состояние и собранные ответы клиента по ходу диалога
type UserData struct {
	State UserState
	Data  map[string]string
}
