package routines

import (
	"context"
	"log"
	"time"

	"github.com/CorrelAid/svg_converter/models"
)

// Sweepable is the part of the scratch store the sweeper needs.
type Sweepable interface {
	Expired(now time.Time) ([]*models.ScratchArtifact, error)
	Release(artifact *models.ScratchArtifact) error
}

// StartCleanupRoutine sweeps expired scratch artifacts once immediately and
// then every interval until ctx is done.
func StartCleanupRoutine(ctx context.Context, store Sweepable, interval time.Duration) {
	CleanupExpired(store, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			CleanupExpired(store, now)
		}
	}
}

// CleanupExpired releases every artifact expired at now and returns how
// many were removed.
func CleanupExpired(store Sweepable, now time.Time) int {
	expired, err := store.Expired(now)
	if err != nil {
		log.Printf("Listing expired scratch artifacts failed: %v", err)
		return 0
	}

	removed := 0
	for _, artifact := range expired {
		if !artifact.Expired(now) {
			continue
		}
		if err := store.Release(artifact); err != nil {
			log.Printf("Deleting expired scratch artifact failed: id=%s err=%v", artifact.ID, err)
			continue
		}
		removed++
		log.Printf("Deleted expired scratch artifact: id=%s input=%s age=%s", artifact.ID, artifact.InputPath, now.Sub(artifact.CreatedAt))
	}
	return removed
}
