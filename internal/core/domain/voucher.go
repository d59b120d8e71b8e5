package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/0minute/VoucherAI/internal/apperrors"
)

// VoucherSchemaVersion is the current on-disk schema of the voucher store
// document. Version 1 kept a list of vouchers per file; version 2 keeps
// exactly one.
const VoucherSchemaVersion = 2

// NowISO returns the current UTC time in the ISO8601 "Z" form used by every
// timestamp persisted by the store.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
}

// EnsureISODate normalizes a date string to YYYY-MM-DD, accepting '/' as a
// separator variant. Anything else fails validation.
func EnsureISODate(s string) (string, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "/", "-"))
	if s == "" {
		return "", fmt.Errorf("%w: date is required (YYYY-MM-DD)", apperrors.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, s)
	}
	return s, nil
}

// Voucher is one extracted invoice/receipt record awaiting journal posting,
// keyed in the store by the identifier of the file it was extracted from.
// JSON field names match the existing on-disk documents and must not change.
type Voucher struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`   // YYYY-MM-DD
	Amount         decimal.Decimal `json:"amount"` // marshalled as a quoted decimal string
	Type           *string         `json:"type"`   // transaction category
	BizNo          *string         `json:"biz_no"`
	Representative *string         `json:"representative"`
	Address        *string         `json:"address"`
	EvidenceType   *string         `json:"evidence_type"`
	AccountTitle   *string         `json:"account_title"`
	AccountCode    *string         `json:"account_code"`
	ProjectName    *string         `json:"project_name"`
	CustomerCode   *string         `json:"customer_code"`
	CustomerName   *string         `json:"customer_name"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// NewVoucher returns an empty voucher with identity and audit stamps set.
func NewVoucher() Voucher {
	now := NowISO()
	return Voucher{
		ID:        uuid.NewString(),
		Amount:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// VoucherFields is a partial update: nil pointers leave the target field
// untouched, empty strings clear an optional field to null. Date can never be
// cleared once set.
type VoucherFields struct {
	Date           *string          `json:"date,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Type           *string          `json:"type,omitempty"`
	BizNo          *string          `json:"biz_no,omitempty"`
	Representative *string          `json:"representative,omitempty"`
	Address        *string          `json:"address,omitempty"`
	EvidenceType   *string          `json:"evidence_type,omitempty"`
	AccountTitle   *string          `json:"account_title,omitempty"`
	AccountCode    *string          `json:"account_code,omitempty"`
	ProjectName    *string          `json:"project_name,omitempty"`
	CustomerCode   *string          `json:"customer_code,omitempty"`
	CustomerName   *string          `json:"customer_name,omitempty"`
}

func normalizeOptional(dst **string, src *string) {
	if src == nil {
		return
	}
	if strings.TrimSpace(*src) == "" {
		*dst = nil
		return
	}
	v := strings.TrimSpace(*src)
	*dst = &v
}

// ApplyFields mutates the voucher with the supplied partial update and bumps
// its updated_at stamp. Amounts must be non-negative; dates must parse.
func (v *Voucher) ApplyFields(f VoucherFields) error {
	if f.Date != nil {
		d, err := EnsureISODate(*f.Date)
		if err != nil {
			return err
		}
		v.Date = d
	}
	if f.Amount != nil {
		if f.Amount.IsNegative() {
			return fmt.Errorf("%w: amount must be non-negative, got %s", apperrors.ErrValidation, f.Amount.String())
		}
		v.Amount = *f.Amount
	}
	normalizeOptional(&v.Type, f.Type)
	normalizeOptional(&v.BizNo, f.BizNo)
	normalizeOptional(&v.Representative, f.Representative)
	normalizeOptional(&v.Address, f.Address)
	normalizeOptional(&v.EvidenceType, f.EvidenceType)
	normalizeOptional(&v.AccountTitle, f.AccountTitle)
	normalizeOptional(&v.AccountCode, f.AccountCode)
	normalizeOptional(&v.ProjectName, f.ProjectName)
	normalizeOptional(&v.CustomerCode, f.CustomerCode)
	normalizeOptional(&v.CustomerName, f.CustomerName)
	v.UpdatedAt = NowISO()
	return nil
}

// VoucherBucket is the per-file slot inside the store document. The legacy
// schema (version 1) kept a Vouchers list; migration collapses it into the
// single Voucher field.
type VoucherBucket struct {
	Version   int       `json:"version"`
	UpdatedAt string    `json:"updated_at"`
	Voucher   *Voucher  `json:"voucher,omitempty"`
	Vouchers  []Voucher `json:"vouchers,omitempty"` // legacy, removed on migration
}

// VoucherStoreDocument is the single JSON document holding every voucher of a
// workspace, one per source file identifier.
type VoucherStoreDocument struct {
	SchemaVersion int                      `json:"schema_version"`
	Version       int                      `json:"version"`
	UpdatedAt     string                   `json:"updated_at"`
	ByFile        map[string]VoucherBucket `json:"by_file"`
}

// NewVoucherStoreDocument returns the default empty document at version 1.
func NewVoucherStoreDocument() *VoucherStoreDocument {
	return &VoucherStoreDocument{
		SchemaVersion: VoucherSchemaVersion,
		Version:       1,
		UpdatedAt:     NowISO(),
		ByFile:        map[string]VoucherBucket{},
	}
}

// DocVersion implements filestore.Versioned.
func (d *VoucherStoreDocument) DocVersion() int { return d.Version }

// StampVersion implements filestore.Versioned.
func (d *VoucherStoreDocument) StampVersion(version int, updatedAt string) {
	d.Version = version
	d.UpdatedAt = updatedAt
}

// VoucherFileEntry is one row of a workspace snapshot.
type VoucherFileEntry struct {
	FileID    string   `json:"rel"`
	Version   int      `json:"version"`
	UpdatedAt string   `json:"updated_at"`
	Voucher   *Voucher `json:"voucher"`
}

// VoucherSnapshot is a read-only view of the whole store document.
type VoucherSnapshot struct {
	SchemaVersion int                `json:"schema_version"`
	Version       int                `json:"version"`
	UpdatedAt     string             `json:"updated_at"`
	Files         []VoucherFileEntry `json:"files"`
}
