package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/orderitem"
)

func TestSubtotal(t *testing.T) {
	items := []orderitem.OrderItem{
		{Quantity: 2, Price: 100},
		{Quantity: 3, Price: 50},
	}

	assert.EqualValues(t, 350, Subtotal(items))
	assert.Zero(t, Subtotal(nil))
}

func TestGrandTotal(t *testing.T) {
	o := Order{TotalAmount: 1000, DiscountAmt: 150}

	assert.EqualValues(t, 850, o.GrandTotal())
}

func TestDiscountSpecApplyAmount(t *testing.T) {
	amt, pct, err := DiscountSpec{Mode: DiscountModeAmount, Amount: 250}.Apply(1000)

	require.NoError(t, err)
	assert.EqualValues(t, 250, amt)
	assert.Nil(t, pct)
}

func TestDiscountSpecApplyPercent(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		subtotal int64
		want     int64
	}{
		{name: "exact", percent: 10, subtotal: 10000, want: 1000},
		{name: "rounds to nearest paisa", percent: 12.5, subtotal: 1234, want: 154},
		{name: "rounds down", percent: 33.3, subtotal: 100, want: 33},
		{name: "full discount", percent: 100, subtotal: 999, want: 999},
		{name: "zero subtotal", percent: 50, subtotal: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, pct, err := DiscountSpec{Mode: DiscountModePercent, Percent: tt.percent}.Apply(tt.subtotal)

			require.NoError(t, err)
			assert.Equal(t, tt.want, amt)
			require.NotNil(t, pct)
			assert.Equal(t, tt.percent, *pct)
		})
	}
}

func TestDiscountSpecApplyInvalidMode(t *testing.T) {
	_, _, err := DiscountSpec{Mode: "bogus"}.Apply(1000)

	assert.ErrorIs(t, err, ErrInvalidDiscountMode)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPlaced, StatusConfirmed, true},
		{StatusConfirmed, StatusPacked, true},
		{StatusPacked, StatusDispatched, true},
		{StatusDispatched, StatusDelivered, true},
		{StatusPlaced, StatusPacked, false},
		{StatusConfirmed, StatusPlaced, false},
		{StatusPlaced, StatusCancelled, true},
		{StatusDispatched, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("packed")
	require.NoError(t, err)
	assert.Equal(t, StatusPacked, s)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("upi")
	require.NoError(t, err)
	assert.Equal(t, PaymentUPI, m)

	_, err = ParsePaymentMethod("card")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}
