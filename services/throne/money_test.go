package throne

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinorToMajor(t *testing.T) {
	requireDecimal(t, "5", minorToMajor(500))
	requireDecimal(t, "0.01", minorToMajor(1))
	requireDecimal(t, "0", minorToMajor(0))
	requireDecimal(t, "-2.5", minorToMajor(-250))
}

func TestDecimalRendersAsJSONNumber(t *testing.T) {
	out, err := json.Marshal(minorToMajor(1050))
	require.NoError(t, err)
	require.Equal(t, "10.5", string(out))
}

func TestNewGiftTotalNormalizesNull(t *testing.T) {
	total := newGiftTotal(MoneyBreakdown{Currency: "usd", Price: 500, Shipping: 100})

	require.Equal(t, "usd", total.Currency)
	requireDecimal(t, "5", total.Price)
	requireDecimal(t, "0", total.Fees)
	requireDecimal(t, "0", total.SubTotal)
	requireDecimal(t, "1", total.Shipping)
	requireDecimal(t, "0", total.Total)
}

func TestConvertGiftTotal(t *testing.T) {
	conv, source := testConverter(map[string]string{"USD/GBP": "0.8"})
	src := newGiftTotal(usdBreakdown(500, 0, 550, 0, 550))

	out, err := convertGiftTotal(context.Background(), conv, src, "GBP")
	require.NoError(t, err)

	require.Equal(t, "GBP", out.Currency)
	requireDecimal(t, "4", out.Price)
	requireDecimal(t, "0", out.Fees)
	requireDecimal(t, "4.4", out.SubTotal)
	requireDecimal(t, "0", out.Shipping)
	requireDecimal(t, "4.4", out.Total)

	// zero fields never reach the source, the rest share one memoized
	// lookup for the pair
	require.Equal(t, int64(1), source.calls.Load())
}

func TestNewItemTotal(t *testing.T) {
	total := newItemTotal(Item{
		Currency: "usd",
		Price:    500,
		Quantity: 3,
		Shipping: ptrTo(int64(100)),
	})

	requireDecimal(t, "5", total.Price)
	requireDecimal(t, "15", total.TotalPrice)
	requireDecimal(t, "1", total.Shipping)
	requireDecimal(t, "16", total.TotalPriceWithShipping)
}

func TestNewItemTotalNullShipping(t *testing.T) {
	total := newItemTotal(Item{Currency: "usd", Price: 500, Quantity: 1})

	requireDecimal(t, "0", total.Shipping)
	requireDecimal(t, "5", total.TotalPriceWithShipping)
}

func TestConvertItemTotal(t *testing.T) {
	conv, _ := testConverter(map[string]string{"EUR/USD": "1.1"})
	item := Item{
		Currency: "eur",
		Price:    200,
		Quantity: 2,
		Shipping: ptrTo(int64(100)),
	}

	out, err := convertItemTotal(context.Background(), conv, item, "USD")
	require.NoError(t, err)

	require.Equal(t, "USD", out.Currency)
	requireDecimal(t, "2.2", out.Price)
	// derived totals are rebuilt on the converted unit price
	requireDecimal(t, "4.4", out.TotalPrice)
	requireDecimal(t, "1.1", out.Shipping)
	requireDecimal(t, "5.5", out.TotalPriceWithShipping)
}
