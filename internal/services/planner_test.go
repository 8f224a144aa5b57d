package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"groupmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMeetingRepo is an in-memory MeetingRepository for tests.
type fakeMeetingRepo struct {
	byEvent map[int]*domain.ConfirmedMeeting
	err     error
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{byEvent: make(map[int]*domain.ConfirmedMeeting)}
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *domain.ConfirmedMeeting) error {
	if f.err != nil {
		return f.err
	}
	cp := *m
	f.byEvent[m.EventID] = &cp
	return nil
}

func (f *fakeMeetingRepo) GetByEventID(ctx context.Context, eventID int) (*domain.ConfirmedMeeting, error) {
	if m, ok := f.byEvent[eventID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func newTestPlannerService(eventRepo *fakeEventRepo, participantRepo *fakeParticipantRepo, meetingRepo *fakeMeetingRepo) domain.PlannerService {
	return NewPlannerService(eventRepo, participantRepo, meetingRepo, &fakeInvitationRepo{}, &fakeEmailService{}, 2*time.Second)
}

func submitParticipant(t *testing.T, repo *fakeParticipantRepo, eventID int, id string, keys ...string) {
	t.Helper()
	a := domain.Availability{}
	for _, k := range keys {
		a[k] = true
	}
	require.NoError(t, repo.Upsert(context.Background(), eventID, &domain.Participant{
		ID: id, Name: id, Availability: a, Submitted: true,
	}))
}

func TestAvailabilityCounts(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestPlannerService(eventRepo, participantRepo, newFakeMeetingRepo())
	event := seedEvent(t, eventRepo, 0)

	counts, err := svc.AvailabilityCounts(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)

	submitParticipant(t, participantRepo, event.ID, "a", "2025-06-02-19-00", "2025-06-02-19-30")
	submitParticipant(t, participantRepo, event.ID, "b", "2025-06-02-19-00")

	counts, err = svc.AvailabilityCounts(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["2025-06-02-19-00"])
	assert.Equal(t, 1, counts["2025-06-02-19-30"])
	assert.Equal(t, 0, counts["2025-06-03-10-00"])

	_, err = svc.AvailabilityCounts(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecommendations(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	svc := newTestPlannerService(eventRepo, participantRepo, newFakeMeetingRepo())
	event := seedEvent(t, eventRepo, 0)

	submitParticipant(t, participantRepo, event.ID, "a", "2025-06-02-19-00")
	submitParticipant(t, participantRepo, event.ID, "b", "2025-06-02-19-00")

	tiers, err := svc.Recommendations(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 1)
	assert.Equal(t, domain.TierPerfect, tiers[0].Label)
	require.Len(t, tiers[0].Slots, 1)
	assert.Equal(t, "2025-06-02-19-00", tiers[0].Slots[0].Key)
}

func TestConfirmMeeting(t *testing.T) {
	eventRepo := newFakeEventRepo()
	meetingRepo := newFakeMeetingRepo()
	svc := newTestPlannerService(eventRepo, newFakeParticipantRepo(), meetingRepo)
	event := seedEvent(t, eventRepo, 7)

	m, err := svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID:     event.ID,
		RequesterID: 7,
		Date:        "2025-06-02",
		Time:        "19:00",
		Duration:    1.5,
		Location:    "library",
	})
	require.NoError(t, err)
	assert.Equal(t, "20:30", m.EndTime())

	got, err := svc.GetConfirmedMeeting(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Date, got.Date)
}

func TestConfirmMeetingChecks(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newTestPlannerService(eventRepo, newFakeParticipantRepo(), newFakeMeetingRepo())
	owned := seedEvent(t, eventRepo, 7)

	_, err := svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: owned.ID, RequesterID: 8, Date: "2025-06-02", Time: "19:00", Duration: 1,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: owned.ID, RequesterID: 7, Date: "2025-06-02", Time: "19:00", Duration: 12,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: 999, RequesterID: 7, Date: "2025-06-02", Time: "19:00", Duration: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmMeetingNotifiesInvitees(t *testing.T) {
	eventRepo := newFakeEventRepo()
	invRepo := &fakeInvitationRepo{}
	email := &fakeEmailService{}
	svc := NewPlannerService(eventRepo, newFakeParticipantRepo(), newFakeMeetingRepo(), invRepo, email, 2*time.Second)
	event := seedEvent(t, eventRepo, 7)

	for _, addr := range []string{"ana@example.com", "bruno@example.com", "ana@example.com"} {
		require.NoError(t, invRepo.Create(context.Background(), &domain.EventInvitation{EventID: event.ID, Email: addr}))
	}

	_, err := svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: event.ID, RequesterID: 7, Date: "2025-06-02", Time: "19:00", Duration: 1.5, Location: "library",
	})
	require.NoError(t, err)

	// One confirmation email per invited address, duplicates collapsed.
	require.Len(t, email.confirmed, 2)
	assert.Equal(t, "ana@example.com", email.confirmed[0].Email)
	assert.Equal(t, "bruno@example.com", email.confirmed[1].Email)
	assert.Equal(t, event.Title, email.confirmed[0].EventTitle)
	assert.Equal(t, "19:00", email.confirmed[0].StartTime)
	assert.Equal(t, "20:30", email.confirmed[0].EndTime)
}

func TestConfirmMeetingSendFailureStillConfirms(t *testing.T) {
	eventRepo := newFakeEventRepo()
	invRepo := &fakeInvitationRepo{}
	meetingRepo := newFakeMeetingRepo()
	svc := NewPlannerService(eventRepo, newFakeParticipantRepo(), meetingRepo, invRepo, &fakeEmailService{err: errors.New("ses down")}, 2*time.Second)
	event := seedEvent(t, eventRepo, 0)

	require.NoError(t, invRepo.Create(context.Background(), &domain.EventInvitation{EventID: event.ID, Email: "ana@example.com"}))

	_, err := svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: event.ID, Date: "2025-06-02", Time: "10:00", Duration: 1,
	})
	require.NoError(t, err)

	_, err = meetingRepo.GetByEventID(context.Background(), event.ID)
	require.NoError(t, err)
}

func TestConfirmMeetingGuestEvent(t *testing.T) {
	eventRepo := newFakeEventRepo()
	svc := newTestPlannerService(eventRepo, newFakeParticipantRepo(), newFakeMeetingRepo())
	guest := seedEvent(t, eventRepo, 0)

	// Events without an owner accept confirmation from anyone.
	_, err := svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: guest.ID, RequesterID: 0, Date: "2025-06-02", Time: "10:00", Duration: 2,
	})
	require.NoError(t, err)
}

func TestMeetingSummary(t *testing.T) {
	eventRepo := newFakeEventRepo()
	participantRepo := newFakeParticipantRepo()
	meetingRepo := newFakeMeetingRepo()
	svc := newTestPlannerService(eventRepo, participantRepo, meetingRepo)
	event := seedEvent(t, eventRepo, 0)

	submitParticipant(t, participantRepo, event.ID, "Ana", "2025-06-02-19-00")
	submitParticipant(t, participantRepo, event.ID, "Bruno", "2025-06-02-19-00")

	_, err := svc.ConfirmMeeting(context.Background(), domain.ConfirmMeetingInput{
		EventID: event.ID, Date: "2025-06-02", Time: "19:00", Duration: 1.5, Location: "library", Notes: "bring notes",
	})
	require.NoError(t, err)

	text, err := svc.MeetingSummary(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "study group")
	assert.Contains(t, text, "Date: 2025-06-02")
	assert.Contains(t, text, "19:00 - 20:30 (1.5 hours)")
	assert.Contains(t, text, "Location: library")
	assert.Contains(t, text, "Notes: bring notes")
	assert.Contains(t, text, "Participants (2): Ana, Bruno")

	_, err = svc.MeetingSummary(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
