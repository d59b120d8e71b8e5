package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
	portsrepo "github.com/0minute/VoucherAI/internal/core/ports/repositories"
	portssvc "github.com/0minute/VoucherAI/internal/core/ports/services"
	"github.com/0minute/VoucherAI/internal/middleware"
)

var (
	ErrMissingDate  = errors.New("voucher has no date")
	ErrUnknownGroup = errors.New("no member table entry for group")
)

// journalService converts reviewed vouchers into balanced double-entry
// journal batches: one accounts-payable credit line per voucher, debit lines
// split across group members or decomposed into net expense plus VAT input
// depending on the category configuration.
type journalService struct {
	cfg         *domain.AccountingConfig
	resolver    *AccountResolver
	voucherRepo portsrepo.VoucherRepositoryFacade
	projector   portssvc.ProjectorSvcFacade
}

// NewJournalService creates the journal generation engine.
func NewJournalService(cfg *domain.AccountingConfig, resolver *AccountResolver, voucherRepo portsrepo.VoucherRepositoryFacade, projector portssvc.ProjectorSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		cfg:         cfg,
		resolver:    resolver,
		voucherRepo: voucherRepo,
		projector:   projector,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// projectCode derives the cost-center code for a project or member name. An
// absent name posts to the fixed catch-all artist code.
func (s *journalService) projectCode(name string) string {
	if name == "" {
		return s.cfg.DefaultArtistCode
	}
	return name + "001"
}

// makeJournalMemo builds the descriptive line text. It is never parsed back.
func makeJournalMemo(evidenceType, date, projectOrMember, vendor, category string) string {
	repl := strings.NewReplacer("-", "", "/", "", ".", "")
	return strings.Join([]string{evidenceType, repl.Replace(date), projectOrMember, vendor, category}, "_")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GenerateBatches produces one balanced batch per voucher entry. Batch
// numbers are 1-based over the processed vouchers; line numbers come from a
// single counter carried across the whole run, starting at 1 on the first
// credit line. Any fatal voucher aborts the run with no partial result.
func (s *journalService) GenerateBatches(ctx context.Context, entries []domain.VoucherFileEntry) ([]domain.JournalBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batches := make([]domain.JournalBatch, 0, len(entries))
	lineNo := 0
	for _, entry := range entries {
		if entry.Voucher == nil {
			continue
		}
		batch, err := s.generateBatch(*entry.Voucher, entry.FileID, len(batches)+1, &lineNo)
		if err != nil {
			return nil, fmt.Errorf("voucher %q: %w", entry.FileID, err)
		}
		if !batch.IsBalanced() {
			// Uneven member splits leave the rounding remainder unreconciled;
			// surfaced here until the remainder rule is settled.
			logger.Warn("Generated batch does not balance",
				slog.String("file_id", entry.FileID),
				slog.String("debit_total", batch.DebitTotal().String()),
				slog.String("credit_total", batch.CreditTotal().String()))
		}
		batches = append(batches, batch)
	}
	logger.Info("Journal batches generated", slog.Int("batch_count", len(batches)), slog.Int("line_count", lineNo))
	return batches, nil
}

func (s *journalService) generateBatch(v domain.Voucher, fileID string, batchNo int, lineNo *int) (domain.JournalBatch, error) {
	if v.Date == "" {
		return domain.JournalBatch{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrMissingDate)
	}
	if v.Amount.IsNegative() {
		return domain.JournalBatch{}, fmt.Errorf("%w: amount must be non-negative, got %s", apperrors.ErrValidation, v.Amount.String())
	}
	category := deref(v.Type)
	if category == "" {
		return domain.JournalBatch{}, fmt.Errorf("%w: voucher has no category", ErrUnmappedCategory)
	}
	account, err := s.resolver.Resolve(category)
	if err != nil {
		return domain.JournalBatch{}, err
	}

	projectName := deref(v.ProjectName)
	vendor := deref(v.CustomerName)
	evidence := deref(v.EvidenceType)

	batch := domain.JournalBatch{BatchNo: batchNo, FileID: fileID}
	line := domain.JournalLine{
		BatchNo:      batchNo,
		PostingDate:  v.Date,
		CustomerName: vendor,
		CustomerCode: deref(v.CustomerCode),
		FileID:       fileID,
	}

	// Credit: the fixed accounts-payable account, for the gross amount.
	credit := line
	*lineNo++
	credit.LineNo = *lineNo
	credit.AccountTitle = s.cfg.APAccount.Title
	credit.AccountCode = s.cfg.APAccount.Code
	credit.Side = domain.Credit
	credit.Amount = v.Amount
	credit.ProjectName = projectName
	credit.ProjectCode = s.projectCode(projectName)
	credit.Memo = makeJournalMemo(evidence, v.Date, projectName, vendor, category)
	batch.Lines = append(batch.Lines, credit)

	switch {
	case s.resolver.IsSplitEligible(account.Title, projectName):
		members, ok := s.cfg.MembersOf(projectName)
		if !ok || len(members) == 0 {
			return domain.JournalBatch{}, fmt.Errorf("%w: %q", ErrUnknownGroup, projectName)
		}
		shares, err := SplitAmount(v.Amount, len(members))
		if err != nil {
			return domain.JournalBatch{}, err
		}
		for i, member := range members {
			debit := line
			*lineNo++
			debit.LineNo = *lineNo
			debit.AccountTitle = account.Title
			debit.AccountCode = account.Code
			debit.Side = domain.Debit
			debit.Amount = shares[i]
			debit.ProjectName = member
			debit.ProjectCode = s.projectCode(member)
			debit.Memo = makeJournalMemo(evidence, v.Date, member, vendor, category)
			batch.Lines = append(batch.Lines, debit)
		}

	case s.resolver.VATRate(category).IsPositive():
		rate := s.resolver.VATRate(category)
		vatAmount := v.Amount.Mul(rate).Round(0)
		netAmount := v.Amount.Sub(vatAmount)
		if netAmount.IsPositive() {
			debit := line
			*lineNo++
			debit.LineNo = *lineNo
			debit.AccountTitle = account.Title
			debit.AccountCode = account.Code
			debit.Side = domain.Debit
			debit.Amount = netAmount
			debit.ProjectName = projectName
			debit.ProjectCode = s.projectCode(projectName)
			debit.Memo = makeJournalMemo(evidence, v.Date, projectName, vendor, category)
			batch.Lines = append(batch.Lines, debit)
		}
		if vatAmount.IsPositive() {
			debit := line
			*lineNo++
			debit.LineNo = *lineNo
			debit.AccountTitle = s.cfg.VATInputAccount.Title
			debit.AccountCode = s.cfg.VATInputAccount.Code
			debit.Side = domain.Debit
			debit.Amount = vatAmount
			debit.ProjectName = projectName
			debit.ProjectCode = s.projectCode(projectName)
			debit.Memo = makeJournalMemo(evidence, v.Date, projectName, vendor, category)
			batch.Lines = append(batch.Lines, debit)
		}

	default:
		debit := line
		*lineNo++
		debit.LineNo = *lineNo
		debit.AccountTitle = account.Title
		debit.AccountCode = account.Code
		debit.Side = domain.Debit
		debit.Amount = v.Amount
		debit.ProjectName = projectName
		debit.ProjectCode = s.projectCode(projectName)
		debit.Memo = makeJournalMemo(evidence, v.Date, projectName, vendor, category)
		batch.Lines = append(batch.Lines, debit)
	}

	return batch, nil
}

// GenerateWorkspaceJournal runs the export pipeline: snapshot the workspace's
// vouchers, generate batches, project into the target column layout.
func (s *journalService) GenerateWorkspaceJournal(ctx context.Context, workspaceID, target string) ([]domain.JournalBatch, []map[string]any, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snap, err := s.voucherRepo.SnapshotVouchers(ctx, workspaceID)
	if err != nil {
		logger.Error("Failed to snapshot vouchers for journal generation", slog.String("error", err.Error()), slog.String("workspace_id", workspaceID))
		return nil, nil, err
	}
	batches, err := s.GenerateBatches(ctx, snap.Files)
	if err != nil {
		return nil, nil, err
	}
	lines := make([]domain.JournalLine, 0, len(batches)*2)
	for _, b := range batches {
		lines = append(lines, b.Lines...)
	}
	rows, err := s.projector.Project(lines, target)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Workspace journal generated",
		slog.String("workspace_id", workspaceID),
		slog.String("target", target),
		slog.Int("batch_count", len(batches)),
		slog.Int("row_count", len(rows)))
	return batches, rows, nil
}
