package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"groupmeet/internal/domain"
)

type plannerService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	meetingRepo     domain.MeetingRepository
	invitationRepo  domain.EventInvitationRepository
	emailService    domain.EmailService
	contextTimeout  time.Duration
}

func NewPlannerService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	meetingRepo domain.MeetingRepository,
	invitationRepo domain.EventInvitationRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.PlannerService {
	return &plannerService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		meetingRepo:     meetingRepo,
		invitationRepo:  invitationRepo,
		emailService:    emailService,
		contextTimeout:  timeout,
	}
}

func (s *plannerService) loadEvent(ctx context.Context, eventID int) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	event.Participants = participants
	return event, nil
}

func (s *plannerService) AvailabilityCounts(ctx context.Context, eventID int) (domain.AvailabilityCount, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Aggregate(), nil
}

func (s *plannerService) Recommendations(ctx context.Context, eventID int) ([]domain.Tier, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Recommend(), nil
}

func (s *plannerService) ConfirmMeeting(ctx context.Context, in domain.ConfirmMeetingInput) (*domain.ConfirmedMeeting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// Guest events have no owner; owned events only confirm for the owner.
	if event.OwnerID != 0 && event.OwnerID != in.RequesterID {
		return nil, domain.ErrForbidden
	}

	m, err := domain.NewConfirmedMeeting(event.ID, in.Date, in.Time, in.Duration, in.Location, in.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("save meeting: %w", err)
	}
	s.notifyInvitees(ctx, event, m)
	return m, nil
}

// notifyInvitees emails the confirmed time to everyone invited to the
// event. Notification is best effort: a failed send never undoes the
// confirmation.
func (s *plannerService) notifyInvitees(ctx context.Context, event *domain.Event, m *domain.ConfirmedMeeting) {
	invitations, err := s.invitationRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return
	}
	seen := make(map[string]struct{}, len(invitations))
	for _, inv := range invitations {
		if _, ok := seen[inv.Email]; ok {
			continue
		}
		seen[inv.Email] = struct{}{}
		_ = s.emailService.SendMeetingConfirmed(ctx, &domain.MeetingConfirmedEmailData{
			Email:      inv.Email,
			EventTitle: event.Title,
			Date:       m.Date,
			StartTime:  m.Time,
			EndTime:    m.EndTime(),
			Location:   m.Location,
			Notes:      m.Notes,
		})
	}
}

func (s *plannerService) GetConfirmedMeeting(ctx context.Context, eventID int) (*domain.ConfirmedMeeting, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	m, err := s.meetingRepo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

// MeetingSummary builds the shareable plain text description of a
// confirmed meeting.
func (s *plannerService) MeetingSummary(ctx context.Context, eventID int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	m, err := s.meetingRepo.GetByEventID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get meeting: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Meeting confirmed: %s\n", event.Title)
	fmt.Fprintf(&b, "Date: %s\n", m.Date)
	fmt.Fprintf(&b, "Time: %s - %s (%g hours)\n", m.Time, m.EndTime(), m.Duration)
	if m.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", m.Location)
	}
	if m.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", m.Notes)
	}
	if len(event.Participants) > 0 {
		names := make([]string, 0, len(event.Participants))
		for _, p := range event.Participants {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "Participants (%d): %s\n", len(names), strings.Join(names, ", "))
	}
	return b.String(), nil
}
