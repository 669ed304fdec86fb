package operations

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/CorrelAid/svg_converter/inits"
	"github.com/CorrelAid/svg_converter/models"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

// Scratch owns the scratch directory and the registry of live artifacts.
// It is safe for concurrent use.
type Scratch struct {
	db  *memdb.MemDB
	dir string
	ttl time.Duration
	now func() time.Time
}

func NewScratch(db *memdb.MemDB, dir string, ttl time.Duration) *Scratch {
	return &Scratch{
		db:  db,
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}
}

// Stage writes src to a new uniquely named scratch file that keeps the
// extension of name (".jpg" when it has none) and registers the artifact.
// The file is synced and closed before Stage returns.
func (s *Scratch) Stage(name string, src io.Reader) (*models.ScratchArtifact, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = models.DefaultInputExtension
	}

	id := uuid.New().String()
	f, err := os.CreateTemp(s.dir, id+"-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("creating scratch file: %w", err)
	}
	inputPath := f.Name()

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(inputPath)
		return nil, fmt.Errorf("writing scratch file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(inputPath)
		return nil, fmt.Errorf("syncing scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(inputPath)
		return nil, fmt.Errorf("closing scratch file: %w", err)
	}

	outputPath := inputPath + models.OutputExtension
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
		os.Remove(inputPath)
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	now := s.now()
	artifact := &models.ScratchArtifact{
		ID:         id,
		InputPath:  inputPath,
		OutputPath: outputPath,
		CreatedAt:  now,
		Expiry:     now.Add(s.ttl),
		ExpiryKey:  models.ExpiryKey(now.Add(s.ttl)),
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(inits.ArtifactTable, artifact); err != nil {
		os.Remove(inputPath)
		return nil, fmt.Errorf("registering scratch artifact: %w", err)
	}
	txn.Commit()

	log.Printf("Staged scratch artifact: id=%s input=%s", artifact.ID, artifact.InputPath)
	return artifact, nil
}

// Release removes both scratch files and the registry row. Files that are
// already gone are not an error.
func (s *Scratch) Release(artifact *models.ScratchArtifact) error {
	var errs []error
	for _, path := range []string{artifact.InputPath, artifact.OutputPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
		}
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	if err := txn.Delete(inits.ArtifactTable, artifact); err != nil && !errors.Is(err, memdb.ErrNotFound) {
		errs = append(errs, fmt.Errorf("unregistering %s: %w", artifact.ID, err))
	} else {
		txn.Commit()
	}

	return errors.Join(errs...)
}

// Live returns the number of registered artifacts.
func (s *Scratch) Live() (int, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(inits.ArtifactTable, "id")
	if err != nil {
		return 0, err
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n, nil
}

// Expired returns the artifacts whose expiry is before now.
func (s *Scratch) Expired(now time.Time) ([]*models.ScratchArtifact, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.ReverseLowerBound(inits.ArtifactTable, "expiry", models.ExpiryKey(now))
	if err != nil {
		return nil, err
	}

	var expired []*models.ScratchArtifact
	for obj := it.Next(); obj != nil; obj = it.Next() {
		expired = append(expired, obj.(*models.ScratchArtifact))
	}
	return expired, nil
}
