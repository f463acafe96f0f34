package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rutibeauty/salon_bot/internal/model"
	"github.com/rutibeauty/salon_bot/internal/repository/base"
)

// PostgresStore — бэкенд стора броней на Postgres. Атомарность
// insert-if-absent обеспечивает уникальный индекс (booking_date,
// start_time): из двух конкурентных вставок вторая получает
// RowsAffected == 0 и уходит в ErrSlotTaken.
type PostgresStore struct {
	base *base.Repository
	loc  *time.Location
}

func NewPostgresStore(pool *pgxpool.Pool, loc *time.Location) *PostgresStore {
	return &PostgresStore{
		base: base.NewRepository(pool),
		loc:  loc,
	}
}

// InsertIfAbsent вставляет бронь; ErrSlotTaken если ключ уже занят
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, record model.BookingRecord) error {
	query := `
		INSERT INTO bookings (booking_date, start_time, duration_minutes, client_name, contact_info, treatment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (booking_date, start_time) DO NOTHING
	`

	affected, err := s.base.ExecAffected(
		ctx, query,
		record.Slot.Date.Format("2006-01-02"),
		record.Slot.Start.String(),
		record.Slot.Duration,
		record.ClientName,
		record.ContactInfo,
		record.Treatment,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if affected == 0 {
		return ErrSlotTaken
	}
	return nil
}

// ListByDate возвращает брони на дату по возрастанию времени
func (s *PostgresStore) ListByDate(ctx context.Context, date time.Time) ([]model.BookingRecord, error) {
	query := `
		SELECT booking_date, start_time, duration_minutes, client_name, contact_info, treatment, created_at
		FROM bookings
		WHERE booking_date = $1
		ORDER BY start_time ASC
	`

	rows, err := s.base.Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	defer rows.Close()

	var records []model.BookingRecord
	for rows.Next() {
		var (
			day       time.Time
			startTime string
			rec       model.BookingRecord
		)
		err := rows.Scan(
			&day,
			&startTime,
			&rec.Slot.Duration,
			&rec.ClientName,
			&rec.ContactInfo,
			&rec.Treatment,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}

		start, err := model.ParseTimeOfDay(startTime)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		// DATE приходит без таймзоны — пересобираем в бизнес-таймзоне
		rec.Slot.Date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
		rec.Slot.Start = start

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return records, nil
}
