package domain

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/0minute/VoucherAI/internal/apperrors"
)

// Canonical journal-line field keys. The export schema table maps these to
// per-ERP column names; a key with no column for a target is dropped from the
// projection for that target.
const (
	FieldPostingDate  = "전표일자"
	FieldLineNo       = "라인번호"
	FieldAccountCode  = "계정코드"
	FieldAccountTitle = "계정과목명"
	FieldSide         = "차변/대변구분"
	FieldAmountKRW    = "금액(원화)"
	FieldAmountFX     = "금액(외화)"
	FieldCustomerName = "거래처명"
	FieldCustomerCode = "거래처코드"
	FieldProjectCode  = "프로젝트코드"
	FieldMemo         = "적요"
	FieldFileID       = "file_id"
)

// Export target systems.
const (
	TargetSAP = "SAP"
	TargetDZ  = "DZ"
)

// FieldSchema maps a canonical field name to its column name per target
// system: canonicalField -> targetSystem -> columnName.
type FieldSchema map[string]map[string]string

// DefaultFieldSchema returns the built-in SAP / DZ column tables. SAP and the
// internal DZ layout expose different column subsets; missing entries are
// intentional, not gaps.
func DefaultFieldSchema() FieldSchema {
	return FieldSchema{
		FieldPostingDate:  {TargetSAP: "BUDAT", TargetDZ: "전표일자"},
		FieldLineNo:       {TargetSAP: "BUZEI", TargetDZ: "라인번호"},
		FieldAccountCode:  {TargetSAP: "HKONT", TargetDZ: "계정코드"},
		FieldAccountTitle: {TargetDZ: "계정과목명"},
		FieldSide:         {TargetSAP: "SHKZG", TargetDZ: "차변/대변구분"},
		FieldAmountKRW:    {TargetSAP: "DMBTR", TargetDZ: "금액(원화)"},
		FieldAmountFX:     {TargetSAP: "WRBTR", TargetDZ: "금액(외화)"},
		FieldCustomerName: {TargetSAP: "ZLIFN", TargetDZ: "거래처명"},
		FieldCustomerCode: {TargetSAP: "LIFNR", TargetDZ: "거래처코드"},
		FieldProjectCode:  {TargetSAP: "PRCTR", TargetDZ: "프로젝트코드"},
		FieldMemo:         {TargetSAP: "SGTXT", TargetDZ: "적요"},
		FieldFileID:       {TargetDZ: "관리항목1"},
	}
}

// LoadFieldSchema reads a schema JSON file, falling back to the defaults when
// path is empty. Column names must be non-empty; a blank name is a config bug,
// not a legitimate drop.
func LoadFieldSchema(path string) (FieldSchema, error) {
	if path == "" {
		return DefaultFieldSchema(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field schema: %w", err)
	}
	schema := FieldSchema{}
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("parse field schema: %w", err)
	}
	for field, targets := range schema {
		for target, column := range targets {
			if column == "" {
				return nil, fmt.Errorf("%w: empty column name for field %q target %q", apperrors.ErrValidation, field, target)
			}
		}
	}
	return schema, nil
}

// Canonical renders the line under its canonical field keys, the shape the
// schema projection consumes.
func (l JournalLine) Canonical() map[string]any {
	return map[string]any{
		FieldPostingDate:  l.PostingDate,
		FieldLineNo:       l.LineNo,
		FieldAccountCode:  l.AccountCode,
		FieldAccountTitle: l.AccountTitle,
		FieldSide:         string(l.Side),
		FieldAmountKRW:    l.Amount.String(),
		FieldAmountFX:     "",
		FieldCustomerName: l.CustomerName,
		FieldCustomerCode: l.CustomerCode,
		FieldProjectCode:  l.ProjectCode,
		FieldMemo:         l.Memo,
		FieldFileID:       l.FileID,
	}
}
