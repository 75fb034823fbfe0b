package analytics

import (
	"testing"
	"time"

	"github.com/linebygizia/gizia-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowth(t *testing.T) {
	assert.Equal(t, 0.0, Growth(100, 0))
	assert.Equal(t, 100.0, Growth(200, 100))
	assert.Equal(t, -50.0, Growth(50, 100))
	assert.Equal(t, 33.33, Growth(400, 300))
	assert.Equal(t, 0.0, Growth(0, 0))
}

func TestBuildMonthBuckets(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC)
	longAgo := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	orders := []OrderRow{
		{Email: "a@example.com", Total: 300, PaymentStatus: models.PaymentStatusPaid, CreatedAt: thisMonth},
		{Email: "b@example.com", Total: 100, PaymentStatus: models.PaymentStatusPending, CreatedAt: thisMonth},
		{Email: "a@example.com", Total: 150, PaymentStatus: models.PaymentStatusPaid, CreatedAt: lastMonth},
		{Email: "c@example.com", Total: 999, PaymentStatus: models.PaymentStatusPaid, CreatedAt: longAgo},
	}

	report := Build(now, orders, nil)

	// Revenue counts paid orders only.
	assert.Equal(t, 300.0, report.Revenue.Current)
	assert.Equal(t, 150.0, report.Revenue.Previous)
	assert.Equal(t, 100.0, report.Revenue.Growth)

	// Order and customer counts include unpaid orders.
	assert.Equal(t, 2.0, report.Orders.Current)
	assert.Equal(t, 1.0, report.Orders.Previous)
	assert.Equal(t, 2.0, report.Customers.Current)
	assert.Equal(t, 1.0, report.Customers.Previous)

	// AOV over all orders in the period.
	assert.Equal(t, 150.0, report.AverageOrderValue.Current)

	// The January 2025 order is outside the six month series window.
	require.Len(t, report.SalesByMonth, 2)
	assert.Equal(t, "Jul 2026", report.SalesByMonth[0].Month)
	assert.Equal(t, "Aug 2026", report.SalesByMonth[1].Month)
	assert.Equal(t, 300.0, report.SalesByMonth[1].Revenue)
	assert.Equal(t, 1, report.SalesByMonth[1].Orders)
}

func TestBuildZeroPrevious(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	orders := []OrderRow{
		{Email: "a@example.com", Total: 100, PaymentStatus: models.PaymentStatusPaid, CreatedAt: now.AddDate(0, 0, -1)},
	}

	report := Build(now, orders, nil)

	// previous = 0 means growth reports as 0, not infinity.
	assert.Equal(t, 0.0, report.Revenue.Growth)
	assert.Equal(t, 0.0, report.Orders.Growth)
	assert.Equal(t, 0.0, report.Customers.Growth)
}

func TestTopProducts(t *testing.T) {
	items := []ItemRow{
		{ProductID: 1, ProductName: "Gown", Quantity: 2, Total: 2500},
		{ProductID: 2, ProductName: "Coat", Quantity: 5, Total: 4900},
		{ProductID: 1, ProductName: "Gown", Quantity: 1, Total: 1250},
		{ProductID: 3, ProductName: "Blouse", Quantity: 4, Total: 1120},
		{ProductID: 4, ProductName: "Bag", Quantity: 1, Total: 750},
		{ProductID: 5, ProductName: "Earrings", Quantity: 1, Total: 180},
		{ProductID: 6, ProductName: "Dress", Quantity: 1, Total: 420},
	}

	top := topProducts(items, 5)

	require.Len(t, top, 5)
	assert.Equal(t, TopProduct{Name: "Coat", Sales: 5, Revenue: 4900}, top[0])
	assert.Equal(t, TopProduct{Name: "Blouse", Sales: 4, Revenue: 1120}, top[1])
	assert.Equal(t, TopProduct{Name: "Gown", Sales: 3, Revenue: 3750}, top[2])
}
