package dateparse

import "time"

// Словари реплик на иврите и английском. Порядок важен:
// стратегии перебирают их последовательно, выигрывает первая совпавшая —
// так результат детерминирован для одного и того же текста.

type weekdayKeyword struct {
	name string
	day  time.Weekday
}

var hebrewWeekdays = []weekdayKeyword{
	{"ראשון", time.Sunday},
	{"שני", time.Monday},
	{"שלישי", time.Tuesday},
	{"רביעי", time.Wednesday},
	{"חמישי", time.Thursday},
	{"שישי", time.Friday},
	{"שבת", time.Saturday},
}

var englishWeekdays = []weekdayKeyword{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

var tomorrowKeywords = []string{"מחר", "tomorrow"}
var todayKeywords = []string{"היום", "today"}

// Маркеры половины дня. Проверяются как подстроки — ровно так клиенты
// и пишут ("בשעה 3 אחה"צ", "3pm").
var pmMarkers = []string{`אחה"צ`, "אחרי הצהריים", "pm"}
var amMarkers = []string{"בבוקר", `לפנה"צ`, "am"}

// Реплики, по которым понятно что клиент вообще называл время.
// Без такой реплики (и без паттерна H:MM) время считается неуказанным,
// даже если в тексте есть цифры.
var timeCues = []string{
	"שעה", "ב-", "at", "am", "pm",
	"בוקר", "צהריים", "ערב", "לילה",
	"morning", "afternoon", "evening", "night",
}
