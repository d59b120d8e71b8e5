package domain

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/0minute/VoucherAI/internal/apperrors"
)

// AccountRef names one ledger account.
type AccountRef struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// CategoryRule maps one transaction category to its expense account and an
// optional VAT rate. A non-zero rate turns on the VAT decomposition mode for
// that category; it is mutually exclusive with member splitting.
type CategoryRule struct {
	Account AccountRef      `json:"account"`
	VATRate decimal.Decimal `json:"vat_rate"`
}

// AccountingConfig bundles every mapping table the journal engine consults.
// It is constructed once (defaults or a JSON file) and injected by reference,
// so tests and tenants can carry independent tables.
type AccountingConfig struct {
	CompanyName     string                  `json:"company_name"`
	APAccount       AccountRef              `json:"ap_account"`        // credited on every voucher
	VATInputAccount AccountRef              `json:"vat_input_account"` // debited in VAT decomposition mode
	Categories      map[string]CategoryRule `json:"categories"`
	SplitTitles     []string                `json:"split_titles"` // account titles whose cost splits across group members
	GroupNames      []string                `json:"group_names"`
	GroupMembers    map[string][]string     `json:"group_members"` // group name -> ordered member list
	DefaultArtistCode string                `json:"default_artist_code"`

	splitTitleSet map[string]struct{}
	groupNameSet  map[string]struct{}
}

// DefaultAccountingConfig returns the built-in entertainment-company tables.
func DefaultAccountingConfig() *AccountingConfig {
	rate10 := decimal.RequireFromString("0.1")
	cfg := &AccountingConfig{
		CompanyName:     "K-POPDEMONHUNTERS",
		APAccount:       AccountRef{Title: "미지급금", Code: "25300"},
		VATInputAccount: AccountRef{Title: "매입부가세", Code: "133100"},
		Categories: map[string]CategoryRule{
			"연예보조_의상ㆍ스타일링": {Account: AccountRef{Title: "연예보조_의상ㆍ스타일링", Code: "52210"}},
			"연예보조_화장ㆍ메이크업": {Account: AccountRef{Title: "연예보조_화장ㆍ메이크업", Code: "52220"}},
			"연예보조_촬영ㆍ영상":   {Account: AccountRef{Title: "연예보조_촬영ㆍ영상", Code: "52230"}},
			"연예보조_기타":      {Account: AccountRef{Title: "연예보조_기타", Code: "52290"}},
			"판매대행수수료":      {Account: AccountRef{Title: "지급수수료", Code: "83101"}},
			"헤어/메이크업":      {Account: AccountRef{Title: "헤어메이크업비", Code: "515200"}, VATRate: rate10},
			"스타일링":         {Account: AccountRef{Title: "스타일링비", Code: "515210"}, VATRate: rate10},
			"안무/연습실":       {Account: AccountRef{Title: "연습실임차료", Code: "514300"}, VATRate: rate10},
			"대관":           {Account: AccountRef{Title: "대관료", Code: "514400"}, VATRate: rate10},
			"촬영/편집":        {Account: AccountRef{Title: "영상제작비", Code: "516100"}, VATRate: rate10},
			"홍보/마케팅":       {Account: AccountRef{Title: "프로모션비", Code: "518500"}, VATRate: rate10},
			"음원/유통":        {Account: AccountRef{Title: "유통수수료", Code: "521700"}},
			"저작권":          {Account: AccountRef{Title: "저작권료", Code: "521800"}},
		},
		SplitTitles:       []string{"연예보조_의상ㆍ스타일링", "연예보조_화장ㆍ메이크업", "연예보조_촬영ㆍ영상", "연예보조_기타"},
		GroupNames:        []string{"HUNTRIX"},
		GroupMembers:      map[string][]string{"HUNTRIX": {"루미", "미라", "조이"}},
		DefaultArtistCode: "ETC001",
	}
	if err := cfg.Validate(); err != nil {
		panic(err) // built-in tables must be consistent
	}
	return cfg
}

// LoadAccountingConfig reads a config JSON file, falling back to the defaults
// when path is empty.
func LoadAccountingConfig(path string) (*AccountingConfig, error) {
	if path == "" {
		return DefaultAccountingConfig(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounting config: %w", err)
	}
	cfg := &AccountingConfig{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse accounting config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks internal consistency and builds the lookup sets.
func (c *AccountingConfig) Validate() error {
	if c.APAccount.Title == "" || c.APAccount.Code == "" {
		return fmt.Errorf("%w: accounts-payable account is required", apperrors.ErrValidation)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: category table is empty", apperrors.ErrValidation)
	}
	c.splitTitleSet = make(map[string]struct{}, len(c.SplitTitles))
	for _, t := range c.SplitTitles {
		c.splitTitleSet[t] = struct{}{}
	}
	c.groupNameSet = make(map[string]struct{}, len(c.GroupNames))
	for _, g := range c.GroupNames {
		if _, ok := c.GroupMembers[g]; !ok {
			return fmt.Errorf("%w: group %q has no member table entry", apperrors.ErrValidation, g)
		}
		c.groupNameSet[g] = struct{}{}
	}
	// Member splitting and VAT decomposition never combine on one category.
	for cat, rule := range c.Categories {
		if _, splits := c.splitTitleSet[rule.Account.Title]; splits && rule.VATRate.IsPositive() {
			return fmt.Errorf("%w: category %q is both split-eligible and VAT-applicable", apperrors.ErrValidation, cat)
		}
	}
	return nil
}

// IsSplitTitle reports whether the account title belongs to the fixed
// split-eligible set.
func (c *AccountingConfig) IsSplitTitle(title string) bool {
	_, ok := c.splitTitleSet[title]
	return ok
}

// IsGroupName reports whether the project name denotes a group rather than an
// individual artist.
func (c *AccountingConfig) IsGroupName(name string) bool {
	_, ok := c.groupNameSet[name]
	return ok
}

// MembersOf returns the ordered member list of a group.
func (c *AccountingConfig) MembersOf(group string) ([]string, bool) {
	m, ok := c.GroupMembers[group]
	return m, ok
}
