package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestOrder(total, delivery string) *Order {
	o := &Order{
		TotalAmount:    dec(total),
		DeliveryCharge: dec(delivery),
		PaymentStatus:  PaymentStateUnpaid,
		OrderStatus:    OrderStatusPending,
	}
	o.BalanceDue = o.GrandTotal()
	return o
}

func TestOrder_GrandTotal(t *testing.T) {
	o := newTestOrder("1000", "50")
	assert.True(t, o.GrandTotal().Equal(dec("1050")))
}

func TestOrder_ApplyPayment_Advance(t *testing.T) {
	o := newTestOrder("1000", "0")

	o.ApplyPayment(LedgerPaymentAdvance, dec("300"))

	assert.True(t, o.AdvancePaid.Equal(dec("300")))
	assert.True(t, o.FinalAmount.Equal(dec("300")))
	assert.True(t, o.BalanceDue.Equal(dec("700")))
	assert.Equal(t, PaymentStatePartial, o.PaymentStatus)
}

func TestOrder_ApplyPayment_AdvanceThenBalance(t *testing.T) {
	o := newTestOrder("1000", "0")

	o.ApplyPayment(LedgerPaymentAdvance, dec("400"))
	o.ApplyPayment(LedgerPaymentBalance, dec("600"))

	assert.True(t, o.FinalAmount.Equal(dec("1000")))
	assert.True(t, o.BalanceDue.Equal(decimal.Zero))
	assert.Equal(t, PaymentStateFullyPaid, o.PaymentStatus)
}

func TestOrder_ApplyPayment_BalanceNeverGoesNegative(t *testing.T) {
	o := newTestOrder("500", "0")

	o.ApplyPayment(LedgerPaymentBalance, dec("800"))

	assert.True(t, o.BalanceDue.Equal(decimal.Zero))
	assert.True(t, o.FinalAmount.Equal(dec("800")))
	assert.Equal(t, PaymentStateFullyPaid, o.PaymentStatus)
}

func TestOrder_ApplyPayment_Full(t *testing.T) {
	o := newTestOrder("1200", "100")
	o.ApplyPayment(LedgerPaymentAdvance, dec("200"))

	o.ApplyPayment(LedgerPaymentFull, dec("1100"))

	assert.True(t, o.FinalAmount.Equal(dec("1300")))
	assert.True(t, o.AdvancePaid.Equal(decimal.Zero))
	assert.True(t, o.BalanceDue.Equal(decimal.Zero))
	assert.Equal(t, PaymentStateFullyPaid, o.PaymentStatus)
}

func TestOrder_ApplyPayment_SecondAdvanceAccumulates(t *testing.T) {
	o := newTestOrder("1000", "0")

	o.ApplyPayment(LedgerPaymentAdvance, dec("200"))
	o.ApplyPayment(LedgerPaymentAdvance, dec("300"))

	assert.True(t, o.AdvancePaid.Equal(dec("500")))
	assert.True(t, o.FinalAmount.Equal(dec("500")))
	assert.True(t, o.BalanceDue.Equal(dec("500")))
	assert.Equal(t, PaymentStatePartial, o.PaymentStatus)
}

func TestOrder_CanShip(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		paid    string
		canShip bool
	}{
		{"nothing paid", "1000", "0", false},
		{"partially paid", "1000", "999", false},
		{"exactly paid", "1000", "1000", true},
		{"overpaid", "1000", "1200", true},
		{"zero total", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(tt.total, "0")
			o.FinalAmount = dec(tt.paid)

			assert.Equal(t, tt.canShip, o.CanShip())
		})
	}
}

func TestOrder_RemainingBeforeShipment(t *testing.T) {
	o := newTestOrder("1000", "50")
	o.FinalAmount = dec("400")

	// delivery charge does not gate shipment, only TotalAmount does
	assert.True(t, o.RemainingBeforeShipment().Equal(dec("600")))

	o.FinalAmount = dec("1500")
	assert.True(t, o.RemainingBeforeShipment().Equal(decimal.Zero))
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus("pending"))
	assert.True(t, ValidOrderStatus("shipped"))
	assert.True(t, ValidOrderStatus("cancelled"))
	assert.False(t, ValidOrderStatus("packed"))
	assert.False(t, ValidOrderStatus(""))
}

func TestValidLedgerPaymentType(t *testing.T) {
	assert.True(t, ValidLedgerPaymentType("advance"))
	assert.True(t, ValidLedgerPaymentType("balance"))
	assert.True(t, ValidLedgerPaymentType("full"))
	assert.False(t, ValidLedgerPaymentType("deposit"))
}
