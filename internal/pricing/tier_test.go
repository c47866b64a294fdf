package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierDiscountSteps(t *testing.T) {
	require.Equal(t, 0.0, TierDiscount(0))
	require.Equal(t, 0.0, TierDiscount(1))
	require.Equal(t, 0.10, TierDiscount(2))
	require.Equal(t, 0.20, TierDiscount(3))
	require.Equal(t, 0.20, TierDiscount(10))
}

func TestListTotal(t *testing.T) {
	require.Equal(t, int64(499), ListTotal(Size50ml, 1))
	require.Equal(t, int64(898), ListTotal(Size50ml, 2))  // 998 - 10%
	require.Equal(t, int64(1198), ListTotal(Size50ml, 3)) // 1497 - 20% = 1197.6
	require.Equal(t, int64(799), ListTotal(Size100ml, 1))
	require.Equal(t, int64(1438), ListTotal(Size100ml, 2))
}

func TestListTotalClampsQuantity(t *testing.T) {
	require.Equal(t, int64(499), ListTotal(Size50ml, 0))
	require.Equal(t, int64(499), ListTotal(Size50ml, -3))
}

func TestValidPromoCode(t *testing.T) {
	require.True(t, ValidPromoCode("welcome5"))
	require.True(t, ValidPromoCode("WELCOME5"))
	require.True(t, ValidPromoCode("  Health5 "))
	require.False(t, ValidPromoCode("welcome10"))
	require.False(t, ValidPromoCode(""))
}
