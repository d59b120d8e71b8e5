package filestore

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
	portsrepo "github.com/0minute/VoucherAI/internal/core/ports/repositories"
)

// VoucherDataFileName is the logical document name of the per-workspace
// voucher store, matching the existing on-disk layout.
const VoucherDataFileName = "voucher_data.json"

// VoucherRepository owns exactly one voucher per source file identifier,
// persisted in a single versioned JSON document per workspace.
type VoucherRepository struct {
	store  *VersionedStore[*domain.VoucherStoreDocument]
	logger *slog.Logger
}

// NewVoucherRepository creates a repository rooted at the workspace tree.
func NewVoucherRepository(root string, logger *slog.Logger) *VoucherRepository {
	return &VoucherRepository{
		store:  NewVersionedStore(root, VoucherDataFileName, domain.NewVoucherStoreDocument),
		logger: logger,
	}
}

var _ portsrepo.VoucherRepositoryFacade = (*VoucherRepository)(nil)

// load reads the workspace document and applies the one-time legacy
// migration: a version-1 bucket held a vouchers list; the survivor is the
// entry with the most recent updated_at (falling back to the last element).
// Concurrent legacy edits can lose data here, this is a pick, not a merge.
func (r *VoucherRepository) load(ctx context.Context, workspaceID string) (*domain.VoucherStoreDocument, error) {
	doc, err := r.store.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	migrated := false
	for fileID, bucket := range doc.ByFile {
		if len(bucket.Vouchers) == 0 {
			continue
		}
		chosen := bucket.Vouchers[len(bucket.Vouchers)-1]
		best := ""
		for _, cand := range bucket.Vouchers {
			stamp := cand.UpdatedAt
			if stamp == "" {
				stamp = cand.CreatedAt
			}
			if stamp > best {
				best = stamp
				chosen = cand
			}
		}
		dropped := len(bucket.Vouchers) - 1
		bucket.Vouchers = nil
		bucket.Voucher = &chosen
		bucket.Version++
		bucket.UpdatedAt = domain.NowISO()
		doc.ByFile[fileID] = bucket
		migrated = true
		r.logger.Warn("Migrated legacy voucher list to single voucher",
			slog.String("workspace_id", workspaceID),
			slog.String("file_id", fileID),
			slog.Int("dropped_entries", dropped))
	}
	if !migrated && doc.SchemaVersion >= domain.VoucherSchemaVersion {
		return doc, nil
	}
	doc.SchemaVersion = domain.VoucherSchemaVersion

	cur := doc.DocVersion()
	if err := r.store.Save(ctx, workspaceID, doc, &cur); err != nil {
		return nil, fmt.Errorf("persist migrated voucher store: %w", err)
	}
	return doc, nil
}

// GetVoucher returns the single voucher of a file identifier.
func (r *VoucherRepository) GetVoucher(ctx context.Context, workspaceID, fileID string) (*domain.Voucher, error) {
	doc, err := r.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	bucket, ok := doc.ByFile[fileID]
	if !ok || bucket.Voucher == nil {
		return nil, fmt.Errorf("%w: voucher for file %q", apperrors.ErrNotFound, fileID)
	}
	v := *bucket.Voucher
	return &v, nil
}

// UpsertVoucher creates or updates the voucher of a file identifier and bumps
// the store version. A new voucher requires a date; an existing voucher's
// date can be changed but never cleared. The returned int is the store
// version after the save.
func (r *VoucherRepository) UpsertVoucher(ctx context.Context, workspaceID, fileID string, fields domain.VoucherFields, expectedVersion *int) (*domain.Voucher, int, error) {
	doc, err := r.load(ctx, workspaceID)
	if err != nil {
		return nil, 0, err
	}

	bucket, exists := doc.ByFile[fileID]
	var voucher domain.Voucher
	if exists && bucket.Voucher != nil {
		voucher = *bucket.Voucher
	} else {
		voucher = domain.NewVoucher()
	}
	if err := voucher.ApplyFields(fields); err != nil {
		return nil, 0, err
	}
	if voucher.Date == "" {
		return nil, 0, fmt.Errorf("%w: date is required for a new voucher (YYYY-MM-DD)", apperrors.ErrValidation)
	}

	if exists {
		bucket.Voucher = &voucher
		bucket.Version++
		bucket.UpdatedAt = domain.NowISO()
	} else {
		bucket = domain.VoucherBucket{Version: 1, UpdatedAt: domain.NowISO(), Voucher: &voucher}
	}
	doc.ByFile[fileID] = bucket

	if err := r.store.Save(ctx, workspaceID, doc, expectedVersion); err != nil {
		return nil, 0, err
	}
	return &voucher, doc.Version, nil
}

// DeleteVoucher removes the voucher of a file identifier. It is idempotent
// and reports whether a record existed; a miss does not bump the version.
func (r *VoucherRepository) DeleteVoucher(ctx context.Context, workspaceID, fileID string, expectedVersion *int) (bool, int, error) {
	doc, err := r.load(ctx, workspaceID)
	if err != nil {
		return false, 0, err
	}
	if _, ok := doc.ByFile[fileID]; !ok {
		return false, doc.Version, nil
	}
	delete(doc.ByFile, fileID)
	if err := r.store.Save(ctx, workspaceID, doc, expectedVersion); err != nil {
		return false, 0, err
	}
	return true, doc.Version, nil
}

// SnapshotVouchers returns a read-only view of the whole store, files sorted
// by identifier so downstream batch numbering is deterministic.
func (r *VoucherRepository) SnapshotVouchers(ctx context.Context, workspaceID string) (*domain.VoucherSnapshot, error) {
	doc, err := r.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	snap := &domain.VoucherSnapshot{
		SchemaVersion: doc.SchemaVersion,
		Version:       doc.Version,
		UpdatedAt:     doc.UpdatedAt,
		Files:         make([]domain.VoucherFileEntry, 0, len(doc.ByFile)),
	}
	ids := make([]string, 0, len(doc.ByFile))
	for id := range doc.ByFile {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		bucket := doc.ByFile[id]
		var v *domain.Voucher
		if bucket.Voucher != nil {
			cp := *bucket.Voucher
			v = &cp
		}
		snap.Files = append(snap.Files, domain.VoucherFileEntry{
			FileID:    id,
			Version:   bucket.Version,
			UpdatedAt: bucket.UpdatedAt,
			Voucher:   v,
		})
	}
	return snap, nil
}
