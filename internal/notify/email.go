package notify

import (
	"context"
	"fmt"

	"github.com/exposeprofi/proposals/internal/email"
	"github.com/exposeprofi/proposals/internal/proposal"
)

// Email mails the summary to a fixed list of internal recipients.
type Email struct {
	provider email.Provider
	renderer *email.Renderer
	to       []string
}

func NewEmail(provider email.Provider, to []string) (*Email, error) {
	if provider == nil {
		return nil, fmt.Errorf("email provider is required")
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	renderer, err := email.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Email{provider: provider, renderer: renderer, to: to}, nil
}

func (e *Email) ProposalCreated(ctx context.Context, summary proposal.Summary) error {
	msg, err := e.renderer.ProposalCreated(summary, e.to)
	if err != nil {
		return fmt.Errorf("failed to render proposal email: %w", err)
	}
	if err := e.provider.SendEmail(ctx, msg); err != nil {
		return fmt.Errorf("failed to send proposal email: %w", err)
	}
	return nil
}
