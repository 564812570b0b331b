package db

import (
	"errors"

	"github.com/exposeprofi/proposals/internal/models"
)

type Client = models.Client
type Proposal = models.Proposal

var ErrNotFound = errors.New("not found")
