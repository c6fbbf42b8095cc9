package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

func TestFormatCart(t *testing.T) {
	lines := []models.CartLine{
		{Product: "Coffee", Quantity: 2, Price: decimal.NewFromInt(5), TotalPrice: decimal.NewFromInt(10)},
		{Product: "Tea, Large (hot)", Quantity: 1, TotalPrice: decimal.RequireFromString("3")},
	}

	require.Equal(t, "2 x Coffee (10.00), 1 x Tea Large hot (3.00)", FormatCart(lines))
}

func TestParseCartDescription(t *testing.T) {
	got := ParseCartDescription("2 x Coffee (10.00), 1 x Tea (3.00)")

	require.Len(t, got, 2)
	require.Equal(t, 2, got[0].Quantity)
	require.Equal(t, "Coffee", got[0].Product)
	require.True(t, got[0].Total.Equal(decimal.NewFromInt(10)))
	require.Equal(t, 1, got[1].Quantity)
	require.Equal(t, "Tea", got[1].Product)
	require.True(t, got[1].Total.Equal(decimal.NewFromInt(3)))
}

func TestParseCartDescription_LegacyDollarSign(t *testing.T) {
	got := ParseCartDescription("3 x Bun ($4.5)")

	require.Len(t, got, 1)
	require.Equal(t, "Bun", got[0].Product)
	require.True(t, got[0].Total.Equal(decimal.RequireFromString("4.5")))
}

// These cases pin down how the text format behaves with awkward names.
func TestParseCartDescription_Fragility(t *testing.T) {
	// " x " inside a name: the greedy product group swallows it.
	got := ParseCartDescription("1 x Box x 2 (4.00)")
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].Quantity)
	require.Equal(t, "Box x 2", got[0].Product)

	// A comma inside a name splits the fragment and both halves are dropped.
	got = ParseCartDescription("1 x Tea, Large (3.00), 2 x Coffee (10.00)")
	require.Len(t, got, 1)
	require.Equal(t, "Coffee", got[0].Product)

	// Parentheses in a name: the last group is still taken as the total.
	got = ParseCartDescription("1 x Tea (hot) (3.00)")
	require.Len(t, got, 1)
	require.Equal(t, "Tea (hot)", got[0].Product)

	require.Empty(t, ParseCartDescription("0 x Ghost (1.00)"))
	require.Empty(t, ParseCartDescription("garbage"))
	require.Empty(t, ParseCartDescription(""))
}

func TestFormatThenParse_SanitizedNamesSurvive(t *testing.T) {
	desc := FormatCart([]models.CartLine{
		{Product: "Tea, Large", Quantity: 2, TotalPrice: decimal.NewFromInt(6)},
	})

	got := ParseCartDescription(desc)
	require.Len(t, got, 1)
	require.Equal(t, "Tea Large", got[0].Product)
	require.Equal(t, 2, got[0].Quantity)
}
