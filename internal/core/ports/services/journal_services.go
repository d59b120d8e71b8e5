package services

import (
	"context"

	"github.com/0minute/VoucherAI/internal/core/domain"
)

// JournalSvcFacade turns reviewed vouchers into balanced journal batches.
type JournalSvcFacade interface {
	// GenerateBatches produces one balanced batch per voucher entry, with a
	// single line-number counter carried across the whole run.
	GenerateBatches(ctx context.Context, entries []domain.VoucherFileEntry) ([]domain.JournalBatch, error)

	// GenerateWorkspaceJournal runs the full export pipeline for a workspace:
	// snapshot, generate, project into the target system's column layout.
	GenerateWorkspaceJournal(ctx context.Context, workspaceID, target string) ([]domain.JournalBatch, []map[string]any, error)
}

// ProjectorSvcFacade renames canonical journal-line fields into an ERP's
// column layout. Canonical fields with no column for the target are dropped.
type ProjectorSvcFacade interface {
	Project(lines []domain.JournalLine, target string) ([]map[string]any, error)
}
