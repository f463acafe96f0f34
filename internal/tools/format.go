package tools

import (
	"fmt"
	"time"
)

// Названия дней недели на иврите, индекс — time.Weekday
var hebrewWeekdayNames = [7]string{
	"יום ראשון",
	"יום שני",
	"יום שלישי",
	"יום רביעי",
	"יום חמישי",
	"יום שישי",
	"שבת",
}

// FormatDateHebrew форматирует дату для клиента: "יום שלישי 02.12"
func FormatDateHebrew(t time.Time) string {
	return fmt.Sprintf("%s %s", hebrewWeekdayNames[t.Weekday()], t.Format("02.01"))
}
