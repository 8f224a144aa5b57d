package domain

import (
	"context"
	"time"
)

// Meeting duration bounds in hours, selectable in half-hour steps.
const (
	MinMeetingDuration  = 0.5
	MaxMeetingDuration  = 8.0
	MeetingDurationStep = 0.5
)

// ConfirmedMeeting records the final time the organizer locked in for
// an event. Once created it is never modified.
type ConfirmedMeeting struct {
	EventID   int       `json:"event_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Duration  float64   `json:"duration"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EndTime returns the meeting's end clock time.
func (m *ConfirmedMeeting) EndTime() string {
	return EndTime(m.Time, m.Duration)
}

// ValidDuration reports whether d is within bounds and on a half-hour
// step.
func ValidDuration(d float64) bool {
	if d < MinMeetingDuration || d > MaxMeetingDuration {
		return false
	}
	steps := d / MeetingDurationStep
	return steps == float64(int(steps))
}

// NewConfirmedMeeting validates the inputs and builds the record.
func NewConfirmedMeeting(eventID int, date, clock string, duration float64, location, notes string) (*ConfirmedMeeting, error) {
	if !ValidDuration(duration) {
		return nil, ErrInvalidInput
	}
	if date == "" || clock == "" {
		return nil, ErrInvalidInput
	}
	return &ConfirmedMeeting{
		EventID:   eventID,
		Date:      date,
		Time:      clock,
		Duration:  duration,
		Location:  location,
		Notes:     notes,
		CreatedAt: time.Now(),
	}, nil
}

// MeetingRepository defines the interface for confirmed meeting storage
type MeetingRepository interface {
	Create(ctx context.Context, m *ConfirmedMeeting) error
	GetByEventID(ctx context.Context, eventID int) (*ConfirmedMeeting, error)
}

// ConfirmMeetingInput carries the fields needed to confirm a meeting.
type ConfirmMeetingInput struct {
	EventID     int
	RequesterID int
	Date        string
	Time        string
	Duration    float64
	Location    string
	Notes       string
}

// PlannerService exposes the read side of the grid (aggregated counts
// and recommendations) plus meeting confirmation.
type PlannerService interface {
	AvailabilityCounts(ctx context.Context, eventID int) (AvailabilityCount, error)
	Recommendations(ctx context.Context, eventID int) ([]Tier, error)
	ConfirmMeeting(ctx context.Context, in ConfirmMeetingInput) (*ConfirmedMeeting, error)
	GetConfirmedMeeting(ctx context.Context, eventID int) (*ConfirmedMeeting, error)
	MeetingSummary(ctx context.Context, eventID int) (string, error)
}
