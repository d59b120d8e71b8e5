package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
)

// Versioned is the contract a document must satisfy to live in a
// VersionedStore: it carries its own monotonically increasing version counter
// and an updated_at stamp.
type Versioned interface {
	DocVersion() int
	StampVersion(version int, updatedAt string)
}

// VersionedStore persists one JSON document per (workspace, logical-name)
// pair with optimistic concurrency and crash-safe atomic replacement.
//
// Saves within one process are serialized by a mutex so a compare-and-swap is
// never torn; writers in other processes remain purely optimistic and race on
// the version check. No lock is held between Load and Save, so callers must
// supply the version they observed and retry on conflict.
type VersionedStore[T Versioned] struct {
	root    string
	name    string // document file name, e.g. "voucher_data.json"
	factory func() T

	mu sync.Mutex
}

// NewVersionedStore creates a store rooted at the workspace directory tree.
// factory must return the default empty document at version 1.
func NewVersionedStore[T Versioned](root, name string, factory func() T) *VersionedStore[T] {
	return &VersionedStore[T]{root: root, name: name, factory: factory}
}

func (s *VersionedStore[T]) path(workspaceID string) string {
	return filepath.Join(s.root, workspaceID, "db", s.name)
}

// Load returns the current document, or the default empty document at version
// 1 when none exists yet. It never blocks and never creates the file.
func (s *VersionedStore[T]) Load(ctx context.Context, workspaceID string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	raw, err := os.ReadFile(s.path(workspaceID))
	if errors.Is(err, fs.ErrNotExist) {
		return s.factory(), nil
	}
	if err != nil {
		return zero, fmt.Errorf("%w: read %s: %v", apperrors.ErrInternal, s.path(workspaceID), err)
	}
	doc := s.factory()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return zero, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInternal, s.path(workspaceID), err)
	}
	return doc, nil
}

// Save persists the document after an optimistic version check. When
// expectedVersion is non-nil and differs from the on-disk version the save
// fails with a *apperrors.VersionConflictError and the document on disk is
// left untouched. On success the document's version is incremented by one,
// updated_at is stamped, and the file is replaced atomically: a reader never
// observes a partially written document.
func (s *VersionedStore[T]) Save(ctx context.Context, workspaceID string, doc T, expectedVersion *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentVersion(workspaceID)
	if err != nil {
		return err
	}
	if expectedVersion != nil && *expectedVersion != current {
		return &apperrors.VersionConflictError{ClientVersion: *expectedVersion, ServerVersion: current}
	}
	doc.StampVersion(current+1, domain.NowISO())
	return s.atomicWrite(workspaceID, doc)
}

// currentVersion reads the version counter from disk; a missing file counts
// as the default document at version 1.
func (s *VersionedStore[T]) currentVersion(workspaceID string) (int, error) {
	raw, err := os.ReadFile(s.path(workspaceID))
	if errors.Is(err, fs.ErrNotExist) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %v", apperrors.ErrInternal, s.path(workspaceID), err)
	}
	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return 0, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInternal, s.path(workspaceID), err)
	}
	if header.Version == 0 {
		header.Version = 1
	}
	return header.Version, nil
}

// atomicWrite writes to a temp file in the target directory, syncs it, then
// renames it over the document.
func (s *VersionedStore[T]) atomicWrite(workspaceID string, doc T) error {
	target := s.path(workspaceID)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", apperrors.ErrInternal, dir, err)
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: encode %s: %v", apperrors.ErrInternal, target, err)
	}

	tmp, err := os.CreateTemp(dir, s.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", apperrors.ErrInternal, target, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", apperrors.ErrInternal, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", apperrors.ErrInternal, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", apperrors.ErrInternal, tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", apperrors.ErrInternal, target, err)
	}
	return nil
}
