package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0minute/VoucherAI/internal/apperrors"
	"github.com/0minute/VoucherAI/internal/core/domain"
)

func strp(s string) *string { return &s }

func TestEnsureISODate(t *testing.T) {
	got, err := domain.EnsureISODate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got)

	// Slash separators are normalized.
	got, err = domain.EnsureISODate("2025/03/01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got)

	got, err = domain.EnsureISODate("  2025-03-01  ")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", got)

	_, err = domain.EnsureISODate("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.EnsureISODate("2025-13-01")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.EnsureISODate("03-01-2025")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewVoucherHasIdentityAndStamps(t *testing.T) {
	v := domain.NewVoucher()
	assert.NotEmpty(t, v.ID)
	assert.NotEmpty(t, v.CreatedAt)
	assert.Equal(t, v.CreatedAt, v.UpdatedAt)
	assert.True(t, v.Amount.IsZero())
}

func TestApplyFieldsPartialUpdate(t *testing.T) {
	v := domain.NewVoucher()
	amount := decimal.NewFromInt(1000)
	require.NoError(t, v.ApplyFields(domain.VoucherFields{
		Date:         strp("2025-03-01"),
		Amount:       &amount,
		CustomerName: strp("벤더A"),
		ProjectName:  strp("HUNTRIX"),
	}))

	// nil pointers leave fields untouched.
	require.NoError(t, v.ApplyFields(domain.VoucherFields{
		CustomerName: strp("벤더B"),
	}))
	assert.Equal(t, "2025-03-01", v.Date)
	require.NotNil(t, v.ProjectName)
	assert.Equal(t, "HUNTRIX", *v.ProjectName)
	require.NotNil(t, v.CustomerName)
	assert.Equal(t, "벤더B", *v.CustomerName)

	// Empty strings clear optional fields to null.
	require.NoError(t, v.ApplyFields(domain.VoucherFields{
		CustomerName: strp(""),
		ProjectName:  strp("   "),
	}))
	assert.Nil(t, v.CustomerName)
	assert.Nil(t, v.ProjectName)
}

func TestApplyFieldsRejectsBadInput(t *testing.T) {
	v := domain.NewVoucher()

	negative := decimal.NewFromInt(-1)
	err := v.ApplyFields(domain.VoucherFields{Amount: &negative})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = v.ApplyFields(domain.VoucherFields{Date: strp("not-a-date")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestVoucherAmountMarshalsAsString(t *testing.T) {
	v := domain.NewVoucher()
	v.Amount = decimal.NewFromInt(1000000)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"amount":"1000000"`)
}

func TestVoucherStoreDocumentDefaults(t *testing.T) {
	doc := domain.NewVoucherStoreDocument()
	assert.Equal(t, domain.VoucherSchemaVersion, doc.SchemaVersion)
	assert.Equal(t, 1, doc.DocVersion())
	assert.NotNil(t, doc.ByFile)

	doc.StampVersion(7, "2025-03-01T00:00:00.000000Z")
	assert.Equal(t, 7, doc.DocVersion())
	assert.Equal(t, "2025-03-01T00:00:00.000000Z", doc.UpdatedAt)
}
