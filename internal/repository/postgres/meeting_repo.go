package postgres

import (
	"context"
	"database/sql"
	"errors"

	"groupmeet/internal/domain"
)

type meetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) domain.MeetingRepository {
	return &meetingRepository{
		DB: db,
	}
}

func (r *meetingRepository) Create(ctx context.Context, m *domain.ConfirmedMeeting) error {
	query := `
		INSERT INTO confirmed_meetings (event_id, meeting_date, meeting_time, duration, location, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		m.EventID, m.Date, m.Time, m.Duration, m.Location, m.Notes, m.CreatedAt,
	)
	return err
}

func (r *meetingRepository) GetByEventID(ctx context.Context, eventID int) (*domain.ConfirmedMeeting, error) {
	query := `
		SELECT event_id, meeting_date, meeting_time, duration, location, notes, created_at
		FROM confirmed_meetings
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	m := &domain.ConfirmedMeeting{}
	var location, notes sql.NullString
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(
		&m.EventID, &m.Date, &m.Time, &m.Duration, &location, &notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if location.Valid {
		m.Location = location.String
	}
	if notes.Valid {
		m.Notes = notes.String
	}
	return m, nil
}
