package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"groupmeet/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	weeklyRepo     domain.WeeklyScheduleRepository
	contextTimeout time.Duration
}

// NewUserService creates a UserService with the given repositories.
func NewUserService(userRepo domain.UserRepository, weeklyRepo domain.WeeklyScheduleRepository, timeout time.Duration) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		weeklyRepo:     weeklyRepo,
		contextTimeout: timeout,
	}
}

func (s *userService) GetByID(ctx context.Context, id int) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) SaveWeeklySchedule(ctx context.Context, userID int, w domain.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Only true entries count as selected; drop anything else.
	clean := domain.WeeklySchedule{}
	for k, v := range w {
		if v {
			clean[k] = true
		}
	}
	if err := s.weeklyRepo.Save(ctx, userID, clean); err != nil {
		return fmt.Errorf("save weekly schedule: %w", err)
	}
	return nil
}

func (s *userService) GetWeeklySchedule(ctx context.Context, userID int) (domain.WeeklySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	w, err := s.weeklyRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.WeeklySchedule{}, nil
		}
		return nil, fmt.Errorf("get weekly schedule: %w", err)
	}
	if w == nil {
		w = domain.WeeklySchedule{}
	}
	return w, nil
}
