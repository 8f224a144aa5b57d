package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"groupmeet/internal/domain"
)

type participantService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	weeklyRepo      domain.WeeklyScheduleRepository
	contextTimeout  time.Duration
}

func NewParticipantService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	weeklyRepo domain.WeeklyScheduleRepository,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		weeklyRepo:      weeklyRepo,
		contextTimeout:  timeout,
	}
}

// seedAvailability builds a new participant's starting grid: everything
// selected, then the user type preset carved out. A logged-in user with
// a saved weekly schedule gets that schedule projected onto the grid
// instead.
func (s *participantService) seedAvailability(ctx context.Context, event *domain.Event, t domain.UserType, userID int) domain.Availability {
	slots := event.Slots()
	if userID != 0 && s.weeklyRepo != nil {
		if w, err := s.weeklyRepo.Get(ctx, userID); err == nil && len(w) > 0 {
			return domain.ProjectWeekly(w, slots)
		}
	}
	return domain.ApplyUserTypePreset(t, domain.AllAvailable(slots), slots)
}

func (s *participantService) JoinEvent(ctx context.Context, in domain.JoinEventInput) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidUserType(in.UserType) {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	p := &domain.Participant{
		ID:           uuid.NewString(),
		Name:         name,
		UserType:     in.UserType,
		Availability: s.seedAvailability(ctx, event, in.UserType, in.UserID),
	}
	if err := s.participantRepo.Upsert(ctx, event.ID, p); err != nil {
		return nil, fmt.Errorf("save participant: %w", err)
	}
	return p, nil
}

func (s *participantService) GetParticipant(ctx context.Context, eventID int, participantID string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return p, nil
}

func (s *participantService) SubmitAvailability(ctx context.Context, eventID int, participantID string, availability domain.Availability) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.participantRepo.GetByID(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	// Only true entries count as selected; drop anything else.
	clean := domain.Availability{}
	for k, v := range availability {
		if v {
			clean[k] = true
		}
	}

	p.Availability = clean
	p.Submitted = true
	if err := s.participantRepo.Upsert(ctx, eventID, p); err != nil {
		return nil, fmt.Errorf("save participant: %w", err)
	}
	return p, nil
}

func (s *participantService) ReseedForUserType(ctx context.Context, eventID int, participantID string, t domain.UserType) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidUserType(t) {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	p, err := s.participantRepo.GetByID(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}

	slots := event.Slots()
	p.UserType = t
	p.Availability = domain.ApplyUserTypePreset(t, domain.AllAvailable(slots), slots)
	p.Submitted = false
	if err := s.participantRepo.Upsert(ctx, eventID, p); err != nil {
		return nil, fmt.Errorf("save participant: %w", err)
	}
	return p, nil
}

func (s *participantService) RenameParticipant(ctx context.Context, eventID int, participantID, name string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if err := s.participantRepo.UpdateName(ctx, eventID, participantID, name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("rename participant: %w", err)
	}
	return nil
}
