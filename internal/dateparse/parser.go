package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rutibeauty/salon_bot/internal/model"
)

// ParseResult — результат разбора фразы клиента.
// Каждое из полей может отсутствовать: дата без времени — валидный запрос
// "какие слоты в четверг", оба поля пустые — "не понял, переспроси".
type ParseResult struct {
	Date    time.Time // полночь в бизнес-таймзоне
	Time    model.TimeOfDay
	HasDate bool
	HasTime bool
}

// Parser разбирает свободный текст на иврите или английском в пару
// (дата, время). Ничего не знает про календарь и брони.
type Parser struct {
	loc *time.Location
}

func New(loc *time.Location) *Parser {
	return &Parser{loc: loc}
}

var (
	isoDatePattern   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	shortDatePattern = regexp.MustCompile(`\b(\d{1,2})[./](\d{1,2})(?:[./](\d{4}))?\b`)
	clockPattern     = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	digitRunPattern  = regexp.MustCompile(`\d+`)
)

// Parse разбирает текст относительно reference.
// Стратегии даты пробуются по порядку: явный формат, "сегодня/завтра",
// имя дня недели. Выигрывает первая сработавшая. Время извлекается
// отдельным проходом со своими правилами 12-часового формата.
func (p *Parser) Parse(text string, reference time.Time) ParseResult {
	var res ParseResult

	// Явная дата вырезается из текста, чтобы её цифры
	// не были приняты за время.
	timeText := text
	if date, rest, ok := p.explicitDate(text, reference); ok {
		res.Date = date
		res.HasDate = true
		timeText = rest
	} else if date, ok := p.relativeDay(text, reference); ok {
		res.Date = date
		res.HasDate = true
	} else if date, ok := p.nextWeekday(text, reference); ok {
		res.Date = date
		res.HasDate = true
	}

	if tod, ok := extractTime(timeText); ok {
		res.Time = tod
		res.HasTime = true
	}

	return res
}

// explicitDate разбирает "2025-12-02", "2.12", "02/12/2025".
// Дата без года, уже прошедшая в этом году, переносится на следующий.
func (p *Parser) explicitDate(text string, reference time.Time) (time.Time, string, bool) {
	if loc := isoDatePattern.FindStringSubmatchIndex(text); loc != nil {
		year, _ := strconv.Atoi(text[loc[2]:loc[3]])
		month, _ := strconv.Atoi(text[loc[4]:loc[5]])
		day, _ := strconv.Atoi(text[loc[6]:loc[7]])
		if d, ok := p.makeDate(year, month, day); ok {
			return d, text[:loc[0]] + text[loc[1]:], true
		}
	}

	if loc := shortDatePattern.FindStringSubmatchIndex(text); loc != nil {
		day, _ := strconv.Atoi(text[loc[2]:loc[3]])
		month, _ := strconv.Atoi(text[loc[4]:loc[5]])
		year := reference.Year()
		explicitYear := loc[6] >= 0
		if explicitYear {
			year, _ = strconv.Atoi(text[loc[6]:loc[7]])
		}
		if d, ok := p.makeDate(year, month, day); ok {
			if !explicitYear && d.Before(p.dateOf(reference)) {
				d, ok = p.makeDate(year+1, month, day)
				if !ok {
					return time.Time{}, text, false
				}
			}
			return d, text[:loc[0]] + text[loc[1]:], true
		}
	}

	return time.Time{}, text, false
}

// relativeDay обрабатывает "сегодня/завтра" на обоих языках
func (p *Parser) relativeDay(text string, reference time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	if containsAny(lower, tomorrowKeywords) {
		return p.dateOf(reference.AddDate(0, 0, 1)), true
	}
	if containsAny(lower, todayKeywords) {
		return p.dateOf(reference), true
	}
	return time.Time{}, false
}

// nextWeekday находит имя дня недели и возвращает его БЛИЖАЙШЕЕ БУДУЩЕЕ
// вхождение. Если сегодня четверг и клиент пишет "ביום חמישי" — это
// четверг через неделю, не сегодня.
func (p *Parser) nextWeekday(text string, reference time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	for _, kw := range hebrewWeekdays {
		if strings.Contains(text, kw.name) {
			return p.dateOf(reference.AddDate(0, 0, daysUntil(reference.Weekday(), kw.day))), true
		}
	}
	for _, kw := range englishWeekdays {
		if strings.Contains(lower, kw.name) {
			return p.dateOf(reference.AddDate(0, 0, daysUntil(reference.Weekday(), kw.day))), true
		}
	}
	return time.Time{}, false
}

// daysUntil — смещение до следующего вхождения дня недели, всегда 1..7
func daysUntil(from, to time.Weekday) int {
	offset := (int(to) - int(from) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return offset
}

// extractTime извлекает время по своим правилам, независимо от стратегий
// даты. Политика продукта: час 1..9 без явного "утра" — это вторая
// половина дня ("בשעה 3" значит 15:00, не 03:00). Менять нельзя —
// клиенты салона на это рассчитывают.
func extractTime(text string) (model.TimeOfDay, bool) {
	if !hasTimeCue(text) {
		return model.TimeOfDay{}, false
	}

	hour := -1
	minute := 0
	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
	} else {
		// Одиночное число: первая группа из одной-двух цифр
		// ("בשעה 3", "5pm"). Длинные числа часом не считаются.
		for _, run := range digitRunPattern.FindAllString(text, -1) {
			if len(run) <= 2 {
				hour, _ = strconv.Atoi(run)
				break
			}
		}
	}
	if hour < 0 || hour > 23 || minute > 59 {
		return model.TimeOfDay{}, false
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, pmMarkers):
		if hour < 12 {
			hour += 12
		}
	case containsAny(lower, amMarkers):
		if hour == 12 {
			hour = 0
		}
	case hour <= 9:
		hour += 12
	}

	return model.TimeOfDay{Hour: hour, Minute: minute}, true
}

// hasTimeCue — упоминал ли клиент время вообще. Паттерн H:MM или
// ключевое слово. Одинокая цифра без реплики временем не считается.
func hasTimeCue(text string) bool {
	if clockPattern.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	return containsAny(lower, timeCues)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// dateOf обрезает момент времени до полуночи в бизнес-таймзоне
func (p *Parser) dateOf(t time.Time) time.Time {
	t = t.In(p.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc)
}

func (p *Parser) makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc)
	// time.Date нормализует 30 февраля в 2 марта — отсекаем такие даты
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}
