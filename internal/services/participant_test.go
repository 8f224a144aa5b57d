package services

import (
	"context"
	"testing"
	"time"

	"groupmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWeeklyRepo is an in-memory WeeklyScheduleRepository for tests.
type fakeWeeklyRepo struct {
	byUser map[int]domain.WeeklySchedule
	err    error
}

func newFakeWeeklyRepo() *fakeWeeklyRepo {
	return &fakeWeeklyRepo{byUser: make(map[int]domain.WeeklySchedule)}
}

func (f *fakeWeeklyRepo) Save(ctx context.Context, userID int, w domain.WeeklySchedule) error {
	if f.err != nil {
		return f.err
	}
	f.byUser[userID] = w
	return nil
}

func (f *fakeWeeklyRepo) Get(ctx context.Context, userID int) (domain.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	w, ok := f.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func seedEvent(t *testing.T, repo *fakeEventRepo, ownerID int) *domain.Event {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Event{
		Title:     "study group",
		StartDate: "2025-06-02",
		EndDate:   "2025-06-03",
		EventCode: "abcd",
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	e, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e
}

func newTestParticipantService(eventRepo *fakeEventRepo, participantRepo *fakeParticipantRepo, weeklyRepo *fakeWeeklyRepo) domain.ParticipantService {
	return NewParticipantService(eventRepo, participantRepo, weeklyRepo, 2*time.Second)
}

func TestJoinEventSeedsPreset(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestParticipantService(eventRepo, participantRepo, newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	p, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{
		EventID:  event.ID,
		Name:     "Ana",
		UserType: domain.UserTypeOfficeWorker,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.Submitted)

	// Weekday working hours are carved out, evenings stay.
	assert.NotContains(t, p.Availability, "2025-06-02-09-00")
	assert.NotContains(t, p.Availability, "2025-06-02-17-30")
	assert.True(t, p.Availability["2025-06-02-18-00"])
	assert.True(t, p.Availability["2025-06-02-08-30"])
}

func TestJoinEventCustomSeedsEverything(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newTestParticipantService(eventRepo, newFakeParticipantRepo(), newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	p, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{
		EventID:  event.ID,
		Name:     "Bruno",
		UserType: domain.UserTypeCustom,
	})
	require.NoError(t, err)
	assert.Len(t, p.Availability, 96)
}

func TestJoinEventUsesWeeklySchedule(t *testing.T) {
	eventRepo := newFakeEventRepo()
	weeklyRepo := newFakeWeeklyRepo()
	svc := newTestParticipantService(eventRepo, newFakeParticipantRepo(), weeklyRepo)
	event := seedEvent(t, eventRepo, 0)

	require.NoError(t, weeklyRepo.Save(context.Background(), 5, domain.WeeklySchedule{
		domain.WeeklyKey("monday", 20, 0): true,
	}))

	p, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{
		EventID:  event.ID,
		Name:     "Clara",
		UserType: domain.UserTypeOfficeWorker,
		UserID:   5,
	})
	require.NoError(t, err)
	// The saved weekly schedule wins over the user type preset.
	require.Len(t, p.Availability, 1)
	assert.True(t, p.Availability["2025-06-02-20-00"])
}

func TestJoinEventValidation(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newTestParticipantService(eventRepo, newFakeParticipantRepo(), newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	_, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: event.ID, Name: "  ", UserType: domain.UserTypeCustom})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: event.ID, Name: "Ana", UserType: "wizard"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: 999, Name: "Ana", UserType: domain.UserTypeCustom})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitAvailability(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestParticipantService(eventRepo, participantRepo, newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	p, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{
		EventID: event.ID, Name: "Ana", UserType: domain.UserTypeCustom,
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitAvailability(context.Background(), event.ID, p.ID, domain.Availability{
		"2025-06-02-20-00": true,
		"2025-06-02-20-30": false,
	})
	require.NoError(t, err)
	assert.True(t, submitted.Submitted)
	require.Len(t, submitted.Availability, 1)
	assert.True(t, submitted.Availability["2025-06-02-20-00"])

	stored, err := participantRepo.GetByID(context.Background(), event.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Submitted)

	_, err = svc.SubmitAvailability(context.Background(), event.ID, "missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitAvailabilityKeepsPosition(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestParticipantService(eventRepo, participantRepo, newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	first, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: event.ID, Name: "Ana", UserType: domain.UserTypeCustom})
	require.NoError(t, err)
	_, err = svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: event.ID, Name: "Bruno", UserType: domain.UserTypeCustom})
	require.NoError(t, err)

	_, err = svc.SubmitAvailability(context.Background(), event.ID, first.ID, domain.Availability{"2025-06-02-20-00": true})
	require.NoError(t, err)

	list, err := participantRepo.ListByEventID(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name, "resubmission keeps the original position")
	assert.True(t, list[0].Submitted)
}

func TestReseedForUserType(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newTestParticipantService(eventRepo, newFakeParticipantRepo(), newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	p, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: event.ID, Name: "Ana", UserType: domain.UserTypeCustom})
	require.NoError(t, err)

	_, err = svc.SubmitAvailability(context.Background(), event.ID, p.ID, domain.Availability{"2025-06-02-20-00": true})
	require.NoError(t, err)

	reseeded, err := svc.ReseedForUserType(context.Background(), event.ID, p.ID, domain.UserTypeHighSchoolStudent)
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeHighSchoolStudent, reseeded.UserType)
	assert.False(t, reseeded.Submitted, "switching type discards the submission")
	assert.NotContains(t, reseeded.Availability, "2025-06-02-08-00")
	assert.NotContains(t, reseeded.Availability, "2025-06-02-16-30")
	assert.True(t, reseeded.Availability["2025-06-02-17-00"])

	_, err = svc.ReseedForUserType(context.Background(), event.ID, p.ID, "wizard")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRenameParticipant(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestParticipantService(eventRepo, participantRepo, newFakeWeeklyRepo())
	event := seedEvent(t, eventRepo, 0)

	p, err := svc.JoinEvent(context.Background(), domain.JoinEventInput{EventID: event.ID, Name: "Ana", UserType: domain.UserTypeCustom})
	require.NoError(t, err)

	require.NoError(t, svc.RenameParticipant(context.Background(), event.ID, p.ID, " Ana Maria "))
	got, err := svc.GetParticipant(context.Background(), event.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)

	assert.ErrorIs(t, svc.RenameParticipant(context.Background(), event.ID, p.ID, "  "), domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.RenameParticipant(context.Background(), event.ID, "missing", "x"), domain.ErrNotFound)
}
