package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"smartgains/trainer-app/internal/config"
	"smartgains/trainer-app/internal/domain"
)

// EmailService delivers plans and session recaps to clients. Dev mode logs
// instead of sending.
type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
}

// NewEmailService creates an EmailService from configuration.
func NewEmailService(cfg config.EmailConfig, isDev bool) *EmailService {
	var client *resend.Client
	if cfg.APIKey != "" && !isDev {
		client = resend.NewClient(cfg.APIKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		isDev:     isDev,
	}
}

// SendPlan mails a workout plan's markdown body to the client.
func (s *EmailService) SendPlan(ctx context.Context, client *domain.Client, plan *domain.Plan) error {
	if client.Email == "" {
		return fmt.Errorf("client %d has no email address", client.ID)
	}

	subject := "Your workout plan: " + plan.Name
	body := fmt.Sprintf("Hi %s,\n\nHere is your workout plan from your trainer:\n\n%s\n", client.FirstName, plan.Details)

	return s.send(ctx, "plan", client.Email, subject, body)
}

// SendSessionRecap mails a summary of a logged training session.
func (s *EmailService) SendSessionRecap(ctx context.Context, client *domain.Client, session *domain.WorkoutProgress) error {
	if client.Email == "" {
		return fmt.Errorf("client %d has no email address", client.ID)
	}

	subject := fmt.Sprintf("Session recap — %s", session.Date)

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\nGreat work today! Here is your session recap:\n\n", client.FirstName)
	fmt.Fprintf(&body, "Workout: %s (%s)\n", session.Name, session.WorkoutType)
	fmt.Fprintf(&body, "Duration: %d minutes\n", session.DurationMinutes)
	if session.IntensityLevel != "" {
		fmt.Fprintf(&body, "Intensity: %s\n", session.IntensityLevel)
	}
	if session.ExercisesLog != "" {
		fmt.Fprintf(&body, "\nExercises:\n%s\n", session.ExercisesLog)
	}
	if session.TrainerNotes != "" {
		fmt.Fprintf(&body, "\nNotes from your trainer:\n%s\n", session.TrainerNotes)
	}

	return s.send(ctx, "session_recap", client.Email, subject, body.String())
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}
