package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"groupmeet/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

// Upsert inserts the participant or, when the id already exists for the
// event, replaces its row in place. Ordering by joined_at keeps each
// participant's original position across resubmissions.
func (r *participantRepository) Upsert(ctx context.Context, eventID int, p *domain.Participant) error {
	availability, err := json.Marshal(p.Availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}
	query := `
		INSERT INTO participants (id, event_id, name, user_type, availability, submitted, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id, event_id) DO UPDATE
		SET name = EXCLUDED.name,
		    user_type = EXCLUDED.user_type,
		    availability = EXCLUDED.availability,
		    submitted = EXCLUDED.submitted
	`
	_, err = r.DB.ExecContext(ctx, query, p.ID, eventID, p.Name, string(p.UserType), availability, p.Submitted)
	return err
}

func (r *participantRepository) GetByID(ctx context.Context, eventID int, participantID string) (*domain.Participant, error) {
	query := `
		SELECT id, name, user_type, availability, submitted
		FROM participants
		WHERE event_id = $1 AND id = $2
	`
	p := &domain.Participant{}
	var availability []byte
	err := r.DB.QueryRowContext(ctx, query, eventID, participantID).Scan(
		&p.ID, &p.Name, &p.UserType, &availability, &p.Submitted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(availability, &p.Availability); err != nil {
		return nil, fmt.Errorf("unmarshal availability: %w", err)
	}
	return p, nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID int) ([]domain.Participant, error) {
	query := `
		SELECT id, name, user_type, availability, submitted
		FROM participants
		WHERE event_id = $1
		ORDER BY joined_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := make([]domain.Participant, 0)
	for rows.Next() {
		p := domain.Participant{}
		var availability []byte
		if err := rows.Scan(&p.ID, &p.Name, &p.UserType, &availability, &p.Submitted); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(availability, &p.Availability); err != nil {
			return nil, fmt.Errorf("unmarshal availability: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) UpdateName(ctx context.Context, eventID int, participantID, name string) error {
	query := `UPDATE participants SET name = $1 WHERE event_id = $2 AND id = $3`
	result, err := r.DB.ExecContext(ctx, query, name, eventID, participantID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
