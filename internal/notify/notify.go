// Package notify delivers the reduced proposal summary to outside systems.
package notify

import (
	"context"
	"errors"

	"github.com/exposeprofi/proposals/internal/proposal"
)

type Notifier interface {
	ProposalCreated(ctx context.Context, summary proposal.Summary) error
}

// Multi fans a summary out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) ProposalCreated(ctx context.Context, summary proposal.Summary) error {
	var errs []error
	for _, n := range m {
		if err := n.ProposalCreated(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Noop struct{}

func (Noop) ProposalCreated(context.Context, proposal.Summary) error {
	return nil
}
