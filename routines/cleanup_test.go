package routines

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/CorrelAid/svg_converter/inits"
	"github.com/CorrelAid/svg_converter/models"
	"github.com/CorrelAid/svg_converter/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpired(t *testing.T) {
	db, err := inits.DBInit()
	require.NoError(t, err)
	scratch := operations.NewScratch(db, t.TempDir(), time.Minute)

	artifact, err := scratch.Stage("leftover.png", strings.NewReader("png"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(artifact.OutputPath, []byte("<svg/>"), 0o600))

	assert.Zero(t, CleanupExpired(scratch, time.Now()), "not yet expired")
	assert.FileExists(t, artifact.InputPath)

	assert.Equal(t, 1, CleanupExpired(scratch, time.Now().Add(2*time.Minute)))
	assert.NoFileExists(t, artifact.InputPath)
	assert.NoFileExists(t, artifact.OutputPath)

	live, err := scratch.Live()
	require.NoError(t, err)
	assert.Zero(t, live)
}

type stubStore struct {
	mu        sync.Mutex
	expired   []*models.ScratchArtifact
	listErr   error
	failIDs   map[string]bool
	released  []string
	sweepDone chan struct{}
}

func (s *stubStore) Expired(time.Time) ([]*models.ScratchArtifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sweepDone != nil {
		select {
		case s.sweepDone <- struct{}{}:
		default:
		}
	}
	return s.expired, s.listErr
}

func (s *stubStore) Release(a *models.ScratchArtifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIDs[a.ID] {
		return errors.New("permission denied")
	}
	s.released = append(s.released, a.ID)
	return nil
}

func TestCleanupExpired_Errors(t *testing.T) {
	t.Run("listing fails", func(t *testing.T) {
		store := &stubStore{listErr: errors.New("boom")}
		assert.Zero(t, CleanupExpired(store, time.Now()))
	})

	t.Run("release failure does not stop the sweep", func(t *testing.T) {
		store := &stubStore{
			expired: []*models.ScratchArtifact{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			failIDs: map[string]bool{"b": true},
		}
		assert.Equal(t, 2, CleanupExpired(store, time.Now()))
		assert.Equal(t, []string{"a", "c"}, store.released)
	})
}

func TestCleanupExpired_SkipsLiveArtifacts(t *testing.T) {
	now := time.Now()
	store := &stubStore{
		expired: []*models.ScratchArtifact{
			{ID: "old", CreatedAt: now.Add(-2 * time.Hour), Expiry: now.Add(-time.Hour)},
			{ID: "live", CreatedAt: now, Expiry: now.Add(time.Hour)},
		},
	}

	assert.Equal(t, 1, CleanupExpired(store, now))
	assert.Equal(t, []string{"old"}, store.released)
}

func TestStartCleanupRoutine(t *testing.T) {
	store := &stubStore{sweepDone: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		StartCleanupRoutine(ctx, store, 10*time.Millisecond)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-store.sweepDone:
		case <-time.After(time.Second):
			t.Fatal("sweep did not run")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("routine did not stop")
	}
}
