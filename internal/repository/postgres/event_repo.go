package postgres

import (
	"context"
	"database/sql"
	"errors"

	"groupmeet/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) (int, error) {
	query := `
		INSERT INTO events (title, description, start_date, end_date, event_code, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var ownerID sql.NullInt64
	if e.OwnerID != 0 {
		ownerID = sql.NullInt64{Int64: int64(e.OwnerID), Valid: true}
	}
	var id int
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.StartDate, e.EndDate, e.EventCode, ownerID, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	var ownerNull sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &e.StartDate, &e.EndDate, &e.EventCode, &ownerNull, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = descNull.String
	}
	if ownerNull.Valid {
		e.OwnerID = int(ownerNull.Int64)
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, event_code, owner_id, created_at
		FROM events
		WHERE id = $1
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetByCode(ctx context.Context, code string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, event_code, owner_id, created_at
		FROM events
		WHERE event_code = $1
	`
	return scanEvent(r.DB.QueryRowContext(ctx, query, code))
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID int) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, start_date, end_date, event_code, owner_id, created_at
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var descNull sql.NullString
		var ownerNull sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Title, &descNull, &e.StartDate, &e.EndDate, &e.EventCode, &ownerNull, &e.CreatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = descNull.String
		}
		if ownerNull.Valid {
			e.OwnerID = int(ownerNull.Int64)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
