package storage

import (
	"context"
	"errors"

	"brieftube/model"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type SummaryRepository interface {
	Save(summary *model.VideoSummary) error
	FindByOwner(owner uuid.UUID) ([]*model.VideoSummary, error)
	FindByOwnerAndID(owner, id uuid.UUID) (*model.VideoSummary, error)
}

type VectorRepository interface {
	Save(ctx context.Context, summary *model.VideoSummary) error
	Search(ctx context.Context, owner uuid.UUID, query string, limit int) ([]*model.VideoSummary, error)
}
