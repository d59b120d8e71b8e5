package repositories

import (
	"context"

	"github.com/0minute/VoucherAI/internal/core/domain"
)

// VoucherRepositoryFacade is the persistence seam of the voucher store. The
// file-backed implementation keeps one versioned JSON document per workspace;
// an embedded KV or relational implementation can replace it without touching
// the journal engine.
//
// expectedVersion carries the optimistic-concurrency check: nil skips the
// check, a stale value fails with *apperrors.VersionConflictError. Mutations
// return the store version after the save.
type VoucherRepositoryFacade interface {
	GetVoucher(ctx context.Context, workspaceID, fileID string) (*domain.Voucher, error)
	UpsertVoucher(ctx context.Context, workspaceID, fileID string, fields domain.VoucherFields, expectedVersion *int) (*domain.Voucher, int, error)
	DeleteVoucher(ctx context.Context, workspaceID, fileID string, expectedVersion *int) (bool, int, error)
	SnapshotVouchers(ctx context.Context, workspaceID string) (*domain.VoucherSnapshot, error)
}
