// Package store persists the board's note collection as a single
// serialized snapshot under one key of the key-value table.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/stickies/internal/db"
	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/alexanderramin/stickies/internal/repository"
)

const (
	// SnapshotKey holds the current note collection.
	SnapshotKey = "stickyNotes"
	// BackupKey holds the collection that the last import replaced.
	BackupKey = SnapshotKey + ".bak"
)

// emptySnapshot is the stored form of a board with no notes.
const emptySnapshot = "[]"

// NoteStore reads and writes the note snapshot.
type NoteStore struct {
	repo repository.KVRepo
}

// NewNoteStore creates a NoteStore over the given key-value repository.
func NewNoteStore(repo repository.KVRepo) *NoteStore {
	return &NoteStore{repo: repo}
}

// Load returns the stored notes. A missing snapshot is an empty board with
// no error. An unparseable snapshot returns an empty board together with an
// error wrapping ErrCorruptSnapshot, so callers can log it and carry on.
func (s *NoteStore) Load(ctx context.Context) ([]domain.Note, error) {
	return loadKey(ctx, s.repo, SnapshotKey)
}

// LoadBackup returns the snapshot saved by the last Replace. ok is false
// when no Replace has run; an empty board that was replaced is a backup
// with zero notes.
func (s *NoteStore) LoadBackup(ctx context.Context) (notes []domain.Note, ok bool, err error) {
	if _, err := s.repo.Get(ctx, BackupKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.Note{}, false, nil
		}
		return []domain.Note{}, false, err
	}
	notes, err = loadKey(ctx, s.repo, BackupKey)
	return notes, true, err
}

// Save overwrites the snapshot with notes.
func (s *NoteStore) Save(ctx context.Context, notes []domain.Note) error {
	value, err := marshalSnapshot(notes)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx, SnapshotKey, value); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	return nil
}

// Replace copies the current snapshot to BackupKey and writes notes as the
// new snapshot, in one transaction.
func Replace(ctx context.Context, uow db.UnitOfWork, notes []domain.Note) error {
	value, err := marshalSnapshot(notes)
	if err != nil {
		return err
	}
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteKVRepo(tx)

		current, err := repo.Get(ctx, SnapshotKey)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			current = emptySnapshot
		case err != nil:
			return err
		}
		if err := repo.Put(ctx, BackupKey, current); err != nil {
			return fmt.Errorf("backing up notes: %w", err)
		}

		if err := repo.Put(ctx, SnapshotKey, value); err != nil {
			return fmt.Errorf("replacing notes: %w", err)
		}
		return nil
	})
}

func loadKey(ctx context.Context, repo repository.KVRepo, key string) ([]domain.Note, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []domain.Note{}, nil
		}
		return []domain.Note{}, err
	}
	notes, err := Decode([]byte(raw), FormatJSON)
	if err != nil {
		return []domain.Note{}, fmt.Errorf("loading %s: %w", key, err)
	}
	return notes, nil
}
