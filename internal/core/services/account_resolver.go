package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/0minute/VoucherAI/internal/core/domain"
)

// ErrUnmappedCategory is returned when a transaction category has no entry in
// the account mapping table. There is deliberately no default account: an
// unmapped category must block posting, not guess.
var ErrUnmappedCategory = errors.New("category has no account mapping")

// AccountResolver answers the two deterministic lookups of the journal
// engine: category to account, and split eligibility.
type AccountResolver struct {
	cfg *domain.AccountingConfig
}

// NewAccountResolver creates a resolver over the injected mapping tables.
func NewAccountResolver(cfg *domain.AccountingConfig) *AccountResolver {
	return &AccountResolver{cfg: cfg}
}

// Resolve maps a category to its expense account.
func (r *AccountResolver) Resolve(category string) (domain.AccountRef, error) {
	rule, ok := r.cfg.Categories[category]
	if !ok {
		return domain.AccountRef{}, fmt.Errorf("%w: %q", ErrUnmappedCategory, category)
	}
	return rule.Account, nil
}

// VATRate returns the category's VAT rate, zero when the category is unmapped
// or carries no VAT decomposition.
func (r *AccountResolver) VATRate(category string) decimal.Decimal {
	rule, ok := r.cfg.Categories[category]
	if !ok {
		return decimal.Zero
	}
	return rule.VATRate
}

// IsSplitEligible reports whether the cost must be divided across group
// members: the account title must be in the split-eligible set AND the
// project must name a group, not an individual artist.
func (r *AccountResolver) IsSplitEligible(accountTitle, projectName string) bool {
	return r.cfg.IsSplitTitle(accountTitle) && r.cfg.IsGroupName(projectName)
}
