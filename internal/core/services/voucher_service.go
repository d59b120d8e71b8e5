package services

import (
	"context"
	"log/slog"

	"github.com/0minute/VoucherAI/internal/core/domain"
	portsrepo "github.com/0minute/VoucherAI/internal/core/ports/repositories"
	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
	"github.com/0minute/VoucherAI/internal/middleware"
)

// voucherService fronts the voucher repository with the category invariant: a
// voucher whose category does not resolve through the account table never
// reaches persistence. A resolvable category also back-fills the resolved
// account title and code, the way first extraction does.
type voucherService struct {
	voucherRepo portsrepo.VoucherRepositoryFacade
	resolver    *AccountResolver
}

// NewVoucherService creates the voucher review facade.
func NewVoucherService(voucherRepo portsrepo.VoucherRepositoryFacade, resolver *AccountResolver) portssvc.VoucherSvcFacade {
	return &voucherService{voucherRepo: voucherRepo, resolver: resolver}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

func (s *voucherService) GetVoucher(ctx context.Context, workspaceID, fileID string) (*domain.Voucher, error) {
	return s.voucherRepo.GetVoucher(ctx, workspaceID, fileID)
}

func (s *voucherService) UpsertVoucher(ctx context.Context, workspaceID, fileID string, fields domain.VoucherFields, expectedVersion *int) (*domain.Voucher, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fields.Type != nil && *fields.Type != "" {
		account, err := s.resolver.Resolve(*fields.Type)
		if err != nil {
			logger.Warn("Rejected voucher upsert with unmapped category",
				slog.String("file_id", fileID), slog.String("category", *fields.Type))
			return nil, 0, err
		}
		if fields.AccountTitle == nil {
			fields.AccountTitle = &account.Title
		}
		if fields.AccountCode == nil {
			fields.AccountCode = &account.Code
		}
	}

	voucher, version, err := s.voucherRepo.UpsertVoucher(ctx, workspaceID, fileID, fields, expectedVersion)
	if err != nil {
		return nil, 0, err
	}
	logger.Info("Voucher upserted",
		slog.String("workspace_id", workspaceID),
		slog.String("file_id", fileID),
		slog.Int("store_version", version))
	return voucher, version, nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, workspaceID, fileID string, expectedVersion *int) (bool, int, error) {
	deleted, version, err := s.voucherRepo.DeleteVoucher(ctx, workspaceID, fileID, expectedVersion)
	if err != nil {
		return false, 0, err
	}
	if deleted {
		middleware.GetLoggerFromCtx(ctx).Info("Voucher deleted",
			slog.String("workspace_id", workspaceID), slog.String("file_id", fileID))
	}
	return deleted, version, nil
}

func (s *voucherService) SnapshotVouchers(ctx context.Context, workspaceID string) (*domain.VoucherSnapshot, error) {
	return s.voucherRepo.SnapshotVouchers(ctx, workspaceID)
}
