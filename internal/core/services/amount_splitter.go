package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/0minute/VoucherAI/internal/apperrors"
)

// SplitAmount divides a currency amount into n whole-unit shares in member
// order. Each share is amount/n rounded half-up to the nearest currency unit.
//
// The rounding remainder is NOT redistributed: when amount is not evenly
// divisible by n the shares do not sum back to amount. Whether the first or
// last member should absorb the difference is still an open accounting
// decision, so the behavior is kept as-is rather than silently corrected.
func SplitAmount(amount decimal.Decimal, n int) ([]decimal.Decimal, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: share count must be positive, got %d", apperrors.ErrValidation, n)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be non-negative, got %s", apperrors.ErrValidation, amount.String())
	}
	share := amount.DivRound(decimal.NewFromInt(int64(n)), 0)
	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = share
	}
	return shares, nil
}
