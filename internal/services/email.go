package services

import (
	"context"
	"fmt"
	"log/slog"

	"groupmeet/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventInvitation sends an invitation using the "event_invitation" template.
func (s *emailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("event invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render event_invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	s.logger.Info("invitation email sent", "to", data.Email, "event_code", data.EventCode)
	return nil
}

// SendMeetingConfirmed sends the confirmation notice using the "meeting_confirmed" template.
func (s *emailService) SendMeetingConfirmed(ctx context.Context, data *domain.MeetingConfirmedEmailData) error {
	if data == nil {
		return fmt.Errorf("meeting confirmed data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("meeting_confirmed", data)
	if err != nil {
		return fmt.Errorf("failed to render meeting_confirmed template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send meeting confirmed email: %w", err)
	}
	s.logger.Info("meeting confirmed email sent", "to", data.Email)
	return nil
}
