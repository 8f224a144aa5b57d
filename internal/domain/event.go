package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden is returned when the caller may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when input fails domain validation.
	ErrInvalidInput = errors.New("invalid input")
)

// UserType identifies the schedule archetype a participant picked.
type UserType string

const (
	UserTypeOfficeWorker        UserType = "office-worker"
	UserTypeUniversityStudent   UserType = "university-student"
	UserTypeHighSchoolStudent   UserType = "high-school-student"
	UserTypeMiddleSchoolStudent UserType = "middle-school-student"
	UserTypeCustom              UserType = "custom"
)

// ValidUserType reports whether t is one of the known user types.
func ValidUserType(t UserType) bool {
	switch t {
	case UserTypeOfficeWorker, UserTypeUniversityStudent,
		UserTypeHighSchoolStudent, UserTypeMiddleSchoolStudent, UserTypeCustom:
		return true
	}
	return false
}

// Participant represents one person invited into an event's grid.
// Availability holds their current selection; Submitted marks whether
// they have finalized it, which is what aggregation counts.
type Participant struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	UserType     UserType     `json:"user_type"`
	Availability Availability `json:"availability"`
	Submitted    bool         `json:"submitted"`
}

// Event represents a scheduling event: a date range whose half-hour
// grid participants fill in.
type Event struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	EventCode    string        `json:"event_code"`
	OwnerID      int           `json:"owner_id,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Participants []Participant `json:"participants,omitempty"`
}

// Slots returns the event's full selection grid.
func (e *Event) Slots() []TimeSlot {
	return GenerateSlots(e.StartDate, e.EndDate)
}

// MergeParticipant inserts p into the event's participant list. An
// existing participant with the same ID is replaced in place, keeping
// its position; otherwise p is appended.
func (e *Event) MergeParticipant(p Participant) {
	for i := range e.Participants {
		if e.Participants[i].ID == p.ID {
			e.Participants[i] = p
			return
		}
	}
	e.Participants = append(e.Participants, p)
}

// FindParticipant returns the participant with the given ID, or nil.
func (e *Event) FindParticipant(id string) *Participant {
	for i := range e.Participants {
		if e.Participants[i].ID == id {
			return &e.Participants[i]
		}
	}
	return nil
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, e *Event) (int, error)
	GetByID(ctx context.Context, id int) (*Event, error)
	GetByCode(ctx context.Context, code string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID int) ([]*Event, error)
	Delete(ctx context.Context, id int) error
}

// ParticipantRepository defines the interface for participant storage
// within an event.
type ParticipantRepository interface {
	Upsert(ctx context.Context, eventID int, p *Participant) error
	GetByID(ctx context.Context, eventID int, participantID string) (*Participant, error)
	ListByEventID(ctx context.Context, eventID int) ([]Participant, error)
	UpdateName(ctx context.Context, eventID int, participantID, name string) error
}

// CreateEventInput carries the fields needed to create an event.
type CreateEventInput struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	OwnerID     int
}

// EventService defines the business operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	GetEventByID(ctx context.Context, id int) (*Event, error)
	GetEventByCode(ctx context.Context, code string) (*Event, error)
	ListEventsByOwner(ctx context.Context, ownerID int) ([]*Event, error)
	DeleteEvent(ctx context.Context, id, requesterID int) error
	SendEventInvitations(ctx context.Context, eventID, ownerID int, emails []string) (sent int, failed []string, err error)
}

// JoinEventInput carries the fields needed to join an event.
type JoinEventInput struct {
	EventID  int
	Name     string
	UserType UserType
	// UserID is set when the joiner is logged in, so their saved weekly
	// schedule seeds the grid. Zero means guest.
	UserID int
}

// ParticipantService defines the business operations on participants.
type ParticipantService interface {
	JoinEvent(ctx context.Context, in JoinEventInput) (*Participant, error)
	GetParticipant(ctx context.Context, eventID int, participantID string) (*Participant, error)
	SubmitAvailability(ctx context.Context, eventID int, participantID string, availability Availability) (*Participant, error)
	ReseedForUserType(ctx context.Context, eventID int, participantID string, t UserType) (*Participant, error)
	RenameParticipant(ctx context.Context, eventID int, participantID, name string) error
}
