package filestore_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
	"github.com/0minute/VoucherAI/internal/repositories/filestore"
)

func newTestRepo(t *testing.T) (*filestore.VoucherRepository, string) {
	t.Helper()
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return filestore.NewVoucherRepository(root, logger), root
}

func strp(s string) *string { return &s }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUpsertNewVoucherRequiresDate(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, _, err := repo.UpsertVoucher(context.Background(), "ws1", "a.pdf", domain.VoucherFields{
		Amount: decp("1000"),
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpsertGetDeleteRoundtrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	voucher, version, err := repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		Date:         strp("2025-03-01"),
		Amount:       decp("1000000"),
		Type:         strp("연예보조_기타"),
		CustomerName: strp("스타일리스트A"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
	assert.NotEmpty(t, voucher.ID)
	assert.Equal(t, "2025-03-01", voucher.Date)
	assert.True(t, voucher.Amount.Equal(decimal.NewFromInt(1000000)))

	got, err := repo.GetVoucher(ctx, "ws1", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, voucher.ID, got.ID)
	require.NotNil(t, got.CustomerName)
	assert.Equal(t, "스타일리스트A", *got.CustomerName)

	deleted, version, err := repo.DeleteVoucher(ctx, "ws1", "a.pdf", nil)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 3, version)

	_, err = repo.GetVoucher(ctx, "ws1", "a.pdf")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting a missing voucher is a no-op and does not bump the version.
	deleted, version, err = repo.DeleteVoucher(ctx, "ws1", "a.pdf", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 3, version)
}

func TestUpsertKeepsSingleVoucherPerFile(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first, _, err := repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		Date:   strp("2025-03-01"),
		Amount: decp("1000"),
	}, nil)
	require.NoError(t, err)

	second, _, err := repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		Amount: decp("2000"),
	}, nil)
	require.NoError(t, err)

	// Same identity, updated in place.
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "2025-03-01", second.Date)

	snap, err := repo.SnapshotVouchers(ctx, "ws1")
	require.NoError(t, err)
	require.Len(t, snap.Files, 1)
	assert.Equal(t, 2, snap.Files[0].Version)
}

func TestUpsertPartialUpdateSemantics(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, _, err := repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		Date:         strp("2025-03-01"),
		Amount:       decp("1000"),
		CustomerName: strp("벤더A"),
		ProjectName:  strp("HUNTRIX"),
	}, nil)
	require.NoError(t, err)

	// nil leaves a field untouched, empty string clears it.
	got, _, err := repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		CustomerName: strp(""),
	}, nil)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerName)
	require.NotNil(t, got.ProjectName)
	assert.Equal(t, "HUNTRIX", *got.ProjectName)
}

func TestStaleUpsertReturnsConflict(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, version, err := repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		Date:   strp("2025-03-01"),
		Amount: decp("1000"),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, version)

	stale := 1
	_, _, err = repo.UpsertVoucher(ctx, "ws1", "a.pdf", domain.VoucherFields{
		Amount: decp("9999"),
	}, &stale)
	require.Error(t, err)

	var conflict *apperrors.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, conflict.ClientVersion)
	assert.Equal(t, 2, conflict.ServerVersion)

	// The stale write must not have landed.
	got, err := repo.GetVoucher(ctx, "ws1", "a.pdf")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(1000)))
}

func TestSnapshotSortsFilesByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, id := range []string{"c.pdf", "a.pdf", "b.pdf"} {
		_, _, err := repo.UpsertVoucher(ctx, "ws1", id, domain.VoucherFields{
			Date:   strp("2025-03-01"),
			Amount: decp("100"),
		}, nil)
		require.NoError(t, err)
	}

	snap, err := repo.SnapshotVouchers(ctx, "ws1")
	require.NoError(t, err)
	require.Len(t, snap.Files, 3)
	assert.Equal(t, "a.pdf", snap.Files[0].FileID)
	assert.Equal(t, "b.pdf", snap.Files[1].FileID)
	assert.Equal(t, "c.pdf", snap.Files[2].FileID)
}

const legacyStoreDocument = `{
  "schema_version": 1,
  "version": 5,
  "updated_at": "2025-02-01T00:00:00.000000Z",
  "by_file": {
    "a.pdf": {
      "version": 3,
      "updated_at": "2025-02-01T00:00:00.000000Z",
      "vouchers": [
        {
          "id": "old-1",
          "date": "2025-01-01",
          "amount": "100",
          "created_at": "2025-01-01T00:00:00.000000Z",
          "updated_at": "2025-01-01T00:00:00.000000Z"
        },
        {
          "id": "old-3",
          "date": "2025-01-03",
          "amount": "300",
          "created_at": "2025-01-03T00:00:00.000000Z",
          "updated_at": "2025-01-05T00:00:00.000000Z"
        },
        {
          "id": "old-2",
          "date": "2025-01-02",
          "amount": "200",
          "created_at": "2025-01-02T00:00:00.000000Z",
          "updated_at": "2025-01-04T00:00:00.000000Z"
        }
      ]
    }
  }
}`

func TestLegacyListMigratesToMostRecentVoucher(t *testing.T) {
	repo, root := newTestRepo(t)
	ctx := context.Background()

	dbDir := filepath.Join(root, "ws1", "db")
	require.NoError(t, os.MkdirAll(dbDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dbDir, filestore.VoucherDataFileName), []byte(legacyStoreDocument), 0o644))

	// The entry with the most recent updated_at survives, regardless of list order.
	got, err := repo.GetVoucher(ctx, "ws1", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "old-3", got.ID)

	snap, err := repo.SnapshotVouchers(ctx, "ws1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoucherSchemaVersion, snap.SchemaVersion)
	assert.Equal(t, 6, snap.Version)
	require.Len(t, snap.Files, 1)
	assert.Equal(t, 4, snap.Files[0].Version)

	// Migration is one-time: a second read does not bump anything.
	again, err := repo.SnapshotVouchers(ctx, "ws1")
	require.NoError(t, err)
	assert.Equal(t, 6, again.Version)
}
