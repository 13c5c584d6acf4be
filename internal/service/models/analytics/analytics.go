package analytics

import (
	"time"

	"github.com/crackersmart/storefront/internal/service/models/expense"
)

// ReportFilter bounds the dashboard aggregates. Zero values mean unbounded.
type ReportFilter struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

// StatusCount is the number of orders currently in one lifecycle status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// RevenueSummary aggregates order money fields over the filter window.
// Cancelled orders are excluded.
type RevenueSummary struct {
	OrderCount     int64 `json:"orderCount"`
	GrossAmount    int64 `json:"grossAmount"`
	DiscountAmount int64 `json:"discountAmount"`
	NetAmount      int64 `json:"netAmount"`
}

// MonthlyRevenue is one point of the month-by-month revenue series.
type MonthlyRevenue struct {
	Month      time.Time `json:"month"`
	OrderCount int64     `json:"orderCount"`
	NetAmount  int64     `json:"netAmount"`
}

// TopProduct is one entry of the best-sellers table.
type TopProduct struct {
	ProductID    int64  `json:"productId"`
	ProductName  string `json:"productName"`
	QuantitySold int64  `json:"quantitySold"`
}

// Dashboard is the admin console landing report.
type Dashboard struct {
	StatusCounts []StatusCount         `json:"statusCounts"`
	Revenue      RevenueSummary        `json:"revenue"`
	Monthly      []MonthlyRevenue      `json:"monthly"`
	TopProducts  []TopProduct          `json:"topProducts"`
	Expenses     []expense.CategorySum `json:"expenses"`
}
