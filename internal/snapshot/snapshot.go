package snapshot

import (
	"context"

	"github.com/almm82030-star/Bilingual-Smart-Queue-System/internal/models"
)

// Store persists a single named snapshot of the queue state. The
// snapshot is read once at startup and overwritten after every
// mutation; a missing snapshot means "start empty".
type Store interface {
	Load(ctx context.Context) (models.QueueState, bool, error)
	Save(ctx context.Context, state models.QueueState) error
}
