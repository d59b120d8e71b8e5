package dto

import (
	"github.com/0minute/VoucherAI/internal/core/domain"
)

// UpsertVoucherRequest carries a full-field-replace upsert for one file's
// voucher. ExpectedVersion is the store version the client last observed;
// omitting it skips the optimistic check.
type UpsertVoucherRequest struct {
	FileID          string               `json:"file_id" binding:"required"`
	ExpectedVersion *int                 `json:"expected_version"`
	Fields          domain.VoucherFields `json:"fields"`
}

// VoucherResponse mirrors the persisted voucher shape.
type VoucherResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Amount         string  `json:"amount"`
	Type           *string `json:"type"`
	BizNo          *string `json:"biz_no"`
	Representative *string `json:"representative"`
	Address        *string `json:"address"`
	EvidenceType   *string `json:"evidence_type"`
	AccountTitle   *string `json:"account_title"`
	AccountCode    *string `json:"account_code"`
	ProjectName    *string `json:"project_name"`
	CustomerCode   *string `json:"customer_code"`
	CustomerName   *string `json:"customer_name"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// UpsertVoucherResponse returns the stored voucher and the store version
// after the save, for the client's next expected_version.
type UpsertVoucherResponse struct {
	Voucher VoucherResponse `json:"voucher"`
	Version int             `json:"version"`
}

// DeleteVoucherResponse reports idempotent delete outcome.
type DeleteVoucherResponse struct {
	Deleted bool `json:"deleted"`
	Version int  `json:"version"`
}

// ToVoucherResponse converts a domain.Voucher to its response shape.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:             v.ID,
		Date:           v.Date,
		Amount:         v.Amount.String(),
		Type:           v.Type,
		BizNo:          v.BizNo,
		Representative: v.Representative,
		Address:        v.Address,
		EvidenceType:   v.EvidenceType,
		AccountTitle:   v.AccountTitle,
		AccountCode:    v.AccountCode,
		ProjectName:    v.ProjectName,
		CustomerCode:   v.CustomerCode,
		CustomerName:   v.CustomerName,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
