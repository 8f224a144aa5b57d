package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"groupmeet/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	invitationRepo  domain.EventInvitationRepository
	emailService    domain.EmailService
	contextTimeout  time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	invitationRepo domain.EventInvitationRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		invitationRepo:  invitationRepo,
		emailService:    emailService,
		contextTimeout:  timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrInvalidInput
	}
	// A bad range produces an empty grid; refuse to create such an event.
	if len(domain.GridDates(in.StartDate, in.EndDate)) == 0 {
		return nil, domain.ErrInvalidInput
	}

	code, err := generateEventCode()
	if err != nil {
		return nil, fmt.Errorf("generate event code: %w", err)
	}

	event := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		EventCode:   code,
		OwnerID:     in.OwnerID,
		CreatedAt:   time.Now(),
	}
	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	event.ID = id
	return event, nil
}

const eventCodeLength = 4

var eventCodeAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateEventCode() (string, error) {
	b := make([]rune, eventCodeLength)
	max := big.NewInt(int64(len(eventCodeAlphabet)))
	for i := 0; i < eventCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = eventCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// loadEvent fetches an event and attaches its participants.
func (s *eventService) loadEvent(ctx context.Context, id int) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.participantRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	event.Participants = participants
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.loadEvent(ctx, id)
}

func (s *eventService) GetEventByCode(ctx context.Context, code string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event by code: %w", err)
	}
	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	event.Participants = participants
	return event, nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id, requesterID int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != requesterID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) SendEventInvitations(ctx context.Context, eventID, ownerID int, emails []string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return 0, nil, domain.ErrForbidden
	}

	inviterName := "The organizer"
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil && owner != nil {
		if name := strings.TrimSpace(owner.Name); name != "" {
			inviterName = name
		} else if owner.Email != "" {
			inviterName = owner.Email
		}
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		inv := &domain.EventInvitation{
			EventID: eventID,
			Email:   email,
			SentAt:  time.Now(),
		}
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			failed = append(failed, email)
			continue
		}
		data := &domain.EventInvitationEmailData{
			Email:       email,
			InviterName: inviterName,
			EventTitle:  event.Title,
			EventCode:   event.EventCode,
			StartDate:   event.StartDate,
			EndDate:     event.EndDate,
		}
		if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}
