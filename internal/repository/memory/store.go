// Package memory provides an in-process store used when no database is
// configured, mainly for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"groupmeet/internal/domain"
)

// Store implements every repository interface over in-memory maps.
type Store struct {
	mu sync.RWMutex

	events       map[int]*domain.Event
	nextEventID  int
	participants map[int][]domain.Participant
	meetings     map[int]*domain.ConfirmedMeeting
	users        map[int]*domain.User
	nextUserID   int
	weekly       map[int]domain.WeeklySchedule
	invitations  []*domain.EventInvitation
	nextInvID    int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		events:       make(map[int]*domain.Event),
		nextEventID:  1,
		participants: make(map[int][]domain.Participant),
		meetings:     make(map[int]*domain.ConfirmedMeeting),
		users:        make(map[int]*domain.User),
		nextUserID:   1,
		weekly:       make(map[int]domain.WeeklySchedule),
		nextInvID:    1,
	}
}

func (s *Store) Create(ctx context.Context, e *domain.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextEventID
	s.nextEventID++
	stored := *e
	stored.ID = id
	stored.Participants = nil
	s.events[id] = &stored
	return id, nil
}

func (s *Store) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.EventCode == code {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) ListByOwnerID(ctx context.Context, ownerID int) ([]*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Event, 0)
	for _, e := range s.events {
		if e.OwnerID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	// Newest first, matching the SQL repository.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.events, id)
	delete(s.participants, id)
	delete(s.meetings, id)
	return nil
}

func (s *Store) Upsert(ctx context.Context, eventID int, p *domain.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.participants[eventID]
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = *p
			return nil
		}
	}
	s.participants[eventID] = append(list, *p)
	return nil
}

func (s *Store) GetParticipantByID(ctx context.Context, eventID int, participantID string) (*domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants[eventID] {
		if p.ID == participantID {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) ListByEventID(ctx context.Context, eventID int) ([]domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Participant(nil), s.participants[eventID]...), nil
}

func (s *Store) UpdateName(ctx context.Context, eventID int, participantID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.participants[eventID]
	for i := range list {
		if list[i].ID == participantID {
			list[i].Name = name
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) CreateMeeting(ctx context.Context, m *domain.ConfirmedMeeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.meetings[m.EventID] = &cp
	return nil
}

func (s *Store) GetMeetingByEventID(ctx context.Context, eventID int) (*domain.ConfirmedMeeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return 0, domain.ErrDuplicateEmail
		}
	}
	id := s.nextUserID
	s.nextUserID++
	stored := *u
	stored.ID = id
	s.users[id] = &stored
	return id, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	stored := *u
	stored.UpdatedAt = time.Now()
	s.users[u.ID] = &stored
	return nil
}

func (s *Store) SaveWeekly(ctx context.Context, userID int, w domain.WeeklySchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(domain.WeeklySchedule, len(w))
	for k := range w {
		cp[k] = true
	}
	s.weekly[userID] = cp
	return nil
}

func (s *Store) GetWeekly(ctx context.Context, userID int) (domain.WeeklySchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.weekly[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := make(domain.WeeklySchedule, len(w))
	for k := range w {
		cp[k] = true
	}
	return cp, nil
}

func (s *Store) CreateInvitation(ctx context.Context, inv *domain.EventInvitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.nextInvID
	s.nextInvID++
	cp := *inv
	s.invitations = append(s.invitations, &cp)
	return nil
}

func (s *Store) ListInvitationsByEventID(ctx context.Context, eventID int) ([]*domain.EventInvitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.EventInvitation, 0)
	for _, inv := range s.invitations {
		if inv.EventID == eventID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Repository adapters. The Store holds all data behind one mutex; these
// views expose it as the narrow interfaces the services expect.

type eventRepo struct{ *Store }
type participantRepo struct{ *Store }
type meetingRepo struct{ *Store }
type userRepo struct{ *Store }
type weeklyRepo struct{ *Store }
type invitationRepo struct{ *Store }

func (r participantRepo) GetByID(ctx context.Context, eventID int, participantID string) (*domain.Participant, error) {
	return r.Store.GetParticipantByID(ctx, eventID, participantID)
}

func (r meetingRepo) Create(ctx context.Context, m *domain.ConfirmedMeeting) error {
	return r.Store.CreateMeeting(ctx, m)
}

func (r meetingRepo) GetByEventID(ctx context.Context, eventID int) (*domain.ConfirmedMeeting, error) {
	return r.Store.GetMeetingByEventID(ctx, eventID)
}

func (r userRepo) Create(ctx context.Context, u *domain.User) (int, error) {
	return r.Store.CreateUser(ctx, u)
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.Store.GetUserByEmail(ctx, email)
}

func (r userRepo) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return r.Store.GetUserByID(ctx, id)
}

func (r userRepo) Update(ctx context.Context, u *domain.User) error {
	return r.Store.UpdateUser(ctx, u)
}

func (r weeklyRepo) Save(ctx context.Context, userID int, w domain.WeeklySchedule) error {
	return r.Store.SaveWeekly(ctx, userID, w)
}

func (r weeklyRepo) Get(ctx context.Context, userID int) (domain.WeeklySchedule, error) {
	return r.Store.GetWeekly(ctx, userID)
}

func (r invitationRepo) Create(ctx context.Context, inv *domain.EventInvitation) error {
	return r.Store.CreateInvitation(ctx, inv)
}

func (r invitationRepo) ListByEventID(ctx context.Context, eventID int) ([]*domain.EventInvitation, error) {
	return r.Store.ListInvitationsByEventID(ctx, eventID)
}

// Events returns the store as an EventRepository.
func (s *Store) Events() domain.EventRepository { return eventRepo{s} }

// Participants returns the store as a ParticipantRepository.
func (s *Store) Participants() domain.ParticipantRepository { return participantRepo{s} }

// Meetings returns the store as a MeetingRepository.
func (s *Store) Meetings() domain.MeetingRepository { return meetingRepo{s} }

// Users returns the store as a UserRepository.
func (s *Store) Users() domain.UserRepository { return userRepo{s} }

// WeeklySchedules returns the store as a WeeklyScheduleRepository.
func (s *Store) WeeklySchedules() domain.WeeklyScheduleRepository { return weeklyRepo{s} }

// Invitations returns the store as an EventInvitationRepository.
func (s *Store) Invitations() domain.EventInvitationRepository { return invitationRepo{s} }
