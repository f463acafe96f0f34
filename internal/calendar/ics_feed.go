package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/model"
)

// FeedClient читает приватный ICS-фид календаря салона.
// Фид отдаёт все события разом, фильтрация по дате — на нашей стороне.
type FeedClient struct {
	url    string
	client *http.Client
	loc    *time.Location
	logger *zap.Logger
}

func NewFeedClient(url string, timeout time.Duration, loc *time.Location, logger *zap.Logger) *FeedClient {
	return &FeedClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
		loc:    loc,
		logger: logger,
	}
}

// Events скачивает фид и возвращает события, пересекающие дату.
// Таймаут и ошибки сети отдаются наверх — там это трактуется как
// "день полностью занят" (fail-closed).
func (c *FeedClient) Events(ctx context.Context, date time.Time) ([]model.CalendarEvent, error) {
	raw, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch ics feed: %w", err)
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse ics feed: %w", err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, c.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var events []model.CalendarEvent
	for _, ve := range cal.Events() {
		ev, ok := c.convert(ve)
		if !ok {
			continue
		}
		if ev.Overlaps(dayStart, dayEnd) {
			events = append(events, ev)
		}
	}

	return events, nil
}

// fetch скачивает фид с ретраями: временные сбои у Google Calendar
// не должны сразу превращаться в "всё занято"
func (c *FeedClient) fetch(ctx context.Context) ([]byte, error) {
	var raw []byte

	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("feed returned status %d", resp.StatusCode)
			if resp.StatusCode >= 500 {
				return retry.RetryableError(err)
			}
			return err
		}

		raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	return raw, err
}

// convert переводит VEVENT в наше событие, нормализуя времена
// в бизнес-таймзону. Событие без начала или с неразборчивыми
// датами пропускается (и логируется).
func (c *FeedClient) convert(ve *ics.VEvent) (model.CalendarEvent, bool) {
	dtstart := ve.GetProperty(ics.ComponentPropertyDtStart)
	if dtstart == nil {
		return model.CalendarEvent{}, false
	}

	if isDateOnly(dtstart) {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			c.logger.Warn("Skipping feed event with bad all-day start", zap.Error(err))
			return model.CalendarEvent{}, false
		}
		// Дата без времени: интерпретируем в бизнес-таймзоне
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.loc)

		end := start.AddDate(0, 0, 1)
		if rawEnd, err := ve.GetAllDayEndAt(); err == nil {
			end = time.Date(rawEnd.Year(), rawEnd.Month(), rawEnd.Day(), 0, 0, 0, 0, c.loc)
		}

		return model.CalendarEvent{Start: start, End: end, AllDay: true}, true
	}

	start, err := ve.GetStartAt()
	if err != nil {
		c.logger.Warn("Skipping feed event with bad start", zap.Error(err))
		return model.CalendarEvent{}, false
	}
	start = start.In(c.loc)

	end := start.Add(time.Hour)
	if rawEnd, err := ve.GetEndAt(); err == nil {
		end = rawEnd.In(c.loc)
	}

	return model.CalendarEvent{Start: start, End: end}, true
}

func isDateOnly(prop *ics.IANAProperty) bool {
	values, ok := prop.ICalParameters["VALUE"]
	return ok && len(values) > 0 && values[0] == "DATE"
}
