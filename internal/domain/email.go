package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventInvitationEmailData holds data for the event invitation email.
type EventInvitationEmailData struct {
	Email       string
	InviterName string
	EventTitle  string
	EventCode   string
	StartDate   string
	EndDate     string
	JoinURL     string
}

// MeetingConfirmedEmailData holds data for the meeting confirmation email.
type MeetingConfirmedEmailData struct {
	Email      string
	Name       string
	EventTitle string
	Date       string
	StartTime  string
	EndTime    string
	Location   string
	Notes      string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventInvitation(ctx context.Context, data *EventInvitationEmailData) error
	SendMeetingConfirmed(ctx context.Context, data *MeetingConfirmedEmailData) error
}
