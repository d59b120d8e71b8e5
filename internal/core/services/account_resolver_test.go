package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0minute/VoucherAI/internal/core/domain"
	"github.com/0minute/VoucherAI/internal/core/services"
)

func newDefaultResolver(t *testing.T) *services.AccountResolver {
	t.Helper()
	return services.NewAccountResolver(domain.DefaultAccountingConfig())
}

func TestResolveKnownCategory(t *testing.T) {
	resolver := newDefaultResolver(t)

	account, err := resolver.Resolve("연예보조_기타")
	require.NoError(t, err)
	assert.Equal(t, "연예보조_기타", account.Title)
	assert.Equal(t, "52290", account.Code)

	account, err = resolver.Resolve("판매대행수수료")
	require.NoError(t, err)
	assert.Equal(t, "지급수수료", account.Title)
	assert.Equal(t, "83101", account.Code)
}

func TestResolveUnmappedCategory(t *testing.T) {
	resolver := newDefaultResolver(t)

	_, err := resolver.Resolve("없는카테고리")
	assert.ErrorIs(t, err, services.ErrUnmappedCategory)
}

func TestVATRateLookup(t *testing.T) {
	resolver := newDefaultResolver(t)

	assert.Equal(t, "0.1", resolver.VATRate("헤어/메이크업").String())
	assert.True(t, resolver.VATRate("연예보조_기타").IsZero())
	assert.True(t, resolver.VATRate("없는카테고리").IsZero())
}

func TestSplitEligibilityNeedsBothConditions(t *testing.T) {
	resolver := newDefaultResolver(t)

	// Split-eligible title AND a group project.
	assert.True(t, resolver.IsSplitEligible("연예보조_기타", "HUNTRIX"))

	// Individual artist projects never split.
	assert.False(t, resolver.IsSplitEligible("연예보조_기타", "루미"))
	assert.False(t, resolver.IsSplitEligible("연예보조_기타", ""))

	// Non-split titles never split, even for a group.
	assert.False(t, resolver.IsSplitEligible("지급수수료", "HUNTRIX"))
}
