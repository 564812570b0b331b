// Package services holds the application use cases behind the HTTP handlers.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/exposeprofi/proposals/internal/logging"
)

var (
	ErrNoServicesSelected = errors.New("select at least one service")
	ErrClientRequired     = errors.New("client information is required")
	ErrInvalidInput       = errors.New("invalid input")
)

var inputValidator = validator.New()

// validateInput wraps validator failures so callers can map them with errors.Is.
func validateInput(v any) error {
	if err := inputValidator.Struct(v); err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}

func loggerFromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	return logging.FromContext(ctx, fallback)
}
