package catalog

import (
	"context"

	"github.com/voyo-music/canonizer/internal/models"
)

// Store is the remote moments catalog. Upserts are keyed on
// (source_platform, source_id) and overwrite on conflict.
type Store interface {
	UpsertBatch(ctx context.Context, moments []models.Moment) error
	UpsertOne(ctx context.Context, moment models.Moment) error
	Count(ctx context.Context) (int, error)
}
