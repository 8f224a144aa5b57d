package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"groupmeet/internal/domain"
)

type weeklyScheduleRepository struct {
	DB *sql.DB
}

func NewWeeklyScheduleRepository(db *sql.DB) domain.WeeklyScheduleRepository {
	return &weeklyScheduleRepository{DB: db}
}

func (r *weeklyScheduleRepository) Save(ctx context.Context, userID int, w domain.WeeklySchedule) error {
	schedule, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	query := `
		INSERT INTO weekly_schedules (user_id, schedule, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET schedule = EXCLUDED.schedule,
		    updated_at = NOW()
	`
	_, err = r.DB.ExecContext(ctx, query, userID, schedule)
	return err
}

func (r *weeklyScheduleRepository) Get(ctx context.Context, userID int) (domain.WeeklySchedule, error) {
	query := `SELECT schedule FROM weekly_schedules WHERE user_id = $1`
	var raw []byte
	if err := r.DB.QueryRowContext(ctx, query, userID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	var w domain.WeeklySchedule
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}
	return w, nil
}
