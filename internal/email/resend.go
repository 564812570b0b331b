package email

import (
	"context"
	"fmt"

	resend "github.com/resend/resend-go/v3"
)

type ResendProvider struct {
	from   string
	client *resend.Client
}

func NewResendProvider(apiKey, from string) *ResendProvider {
	return &ResendProvider{
		from:   from,
		client: resend.NewClient(apiKey),
	}
}

func (r *ResendProvider) SendEmail(ctx context.Context, email *Email) error {
	if err := email.validate(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}
	return nil
}

func (r *ResendProvider) ValidateAPIKey(ctx context.Context) error {
	if _, err := r.client.ApiKeys.ListWithContext(ctx); err != nil {
		return fmt.Errorf("invalid resend API key: %w", err)
	}
	return nil
}

func (e *Email) validate() error {
	if e == nil {
		return fmt.Errorf("email is required")
	}
	if len(e.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if e.HTML == "" && e.Text == "" {
		return fmt.Errorf("email body is empty")
	}
	return nil
}
