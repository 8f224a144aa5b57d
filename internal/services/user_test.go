package services

import (
	"context"
	"testing"
	"time"

	"groupmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(userRepo *fakeUserRepo, weeklyRepo *fakeWeeklyRepo) domain.UserService {
	return NewUserService(userRepo, weeklyRepo, 2*time.Second)
}

func TestUserGetByID(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, newFakeWeeklyRepo())

	id, err := userRepo.Create(context.Background(), &domain.User{Email: "a@b.co", Name: "Ana"})
	require.NoError(t, err)

	user, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSaveWeeklyScheduleDropsFalseEntries(t *testing.T) {
	weeklyRepo := newFakeWeeklyRepo()
	svc := newTestUserService(newFakeUserRepo(), weeklyRepo)

	err := svc.SaveWeeklySchedule(context.Background(), 5, domain.WeeklySchedule{
		"monday-9-00":  true,
		"monday-9-30":  false,
		"friday-20-00": true,
	})
	require.NoError(t, err)

	stored := weeklyRepo.byUser[5]
	require.Len(t, stored, 2)
	assert.True(t, stored["monday-9-00"])
	assert.True(t, stored["friday-20-00"])
}

func TestGetWeeklyScheduleMissingIsEmpty(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), newFakeWeeklyRepo())

	w, err := svc.GetWeeklySchedule(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, w)
	assert.Empty(t, w)
}
