package services

import (
	"context"

	"github.com/0minute/VoucherAI/internal/core/domain"
)

// VoucherSvcFacade exposes voucher review CRUD to the API layer. Upserts
// validate the category against the account mapping table before anything is
// persisted.
type VoucherSvcFacade interface {
	GetVoucher(ctx context.Context, workspaceID, fileID string) (*domain.Voucher, error)
	UpsertVoucher(ctx context.Context, workspaceID, fileID string, fields domain.VoucherFields, expectedVersion *int) (*domain.Voucher, int, error)
	DeleteVoucher(ctx context.Context, workspaceID, fileID string, expectedVersion *int) (bool, int, error)
	SnapshotVouchers(ctx context.Context, workspaceID string) (*domain.VoucherSnapshot, error)
}
