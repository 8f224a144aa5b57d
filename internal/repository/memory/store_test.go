package memory

import (
	"context"
	"testing"
	"time"

	"groupmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreEvents(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Events()

	id, err := repo.Create(ctx, &domain.Event{Title: "x", EventCode: "ab3d", OwnerID: 1, CreatedAt: time.Now()})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)

	byCode, err := repo.GetByCode(ctx, "ab3d")
	require.NoError(t, err)
	assert.Equal(t, id, byCode.ID)

	list, err := repo.ListByOwnerID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreParticipantsUpsertKeepsPosition(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Participants()

	require.NoError(t, repo.Upsert(ctx, 1, &domain.Participant{ID: "a", Name: "Ana"}))
	require.NoError(t, repo.Upsert(ctx, 1, &domain.Participant{ID: "b", Name: "Bruno"}))
	require.NoError(t, repo.Upsert(ctx, 1, &domain.Participant{ID: "a", Name: "Ana", Submitted: true}))

	list, err := repo.ListByEventID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.True(t, list[0].Submitted)
}

func TestStoreUsersDuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Users()

	_, err := repo.Create(ctx, &domain.User{Email: "a@b.co"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Email: "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestStoreWeeklySchedules(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.WeeklySchedules()

	_, err := repo.Get(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Save(ctx, 5, domain.WeeklySchedule{"monday-9-00": true}))
	w, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	assert.True(t, w["monday-9-00"])
}

func TestStoreMeetings(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Meetings()

	require.NoError(t, repo.Create(ctx, &domain.ConfirmedMeeting{EventID: 1, Date: "2025-06-02", Time: "19:00", Duration: 1.5}))
	m, err := repo.GetByEventID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "20:30", m.EndTime())

	_, err = repo.GetByEventID(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
