package analyticssvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crackersmart/storefront/internal/service/models/analytics"
	"github.com/crackersmart/storefront/internal/service/models/expense"
)

type fakeAnalyticsRepo struct {
	statusCounts []analytics.StatusCount
	revenue      analytics.RevenueSummary
	monthly      []analytics.MonthlyRevenue
	topProducts  []analytics.TopProduct
	revenueErr   error
}

func (r *fakeAnalyticsRepo) CountByStatus(_ context.Context, _ analytics.ReportFilter) ([]analytics.StatusCount, error) {
	return r.statusCounts, nil
}

func (r *fakeAnalyticsRepo) RevenueSummary(_ context.Context, _ analytics.ReportFilter) (*analytics.RevenueSummary, error) {
	if r.revenueErr != nil {
		return nil, r.revenueErr
	}

	return &r.revenue, nil
}

func (r *fakeAnalyticsRepo) MonthlyRevenue(_ context.Context, _ analytics.ReportFilter) ([]analytics.MonthlyRevenue, error) {
	return r.monthly, nil
}

func (r *fakeAnalyticsRepo) TopProducts(_ context.Context, _ analytics.ReportFilter, _ int) ([]analytics.TopProduct, error) {
	return r.topProducts, nil
}

type fakeExpenseRepo struct {
	sums []expense.CategorySum
}

func (r *fakeExpenseRepo) Insert(_ context.Context, e expense.Expense) (*expense.Expense, error) {
	return &e, nil
}

func (r *fakeExpenseRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (r *fakeExpenseRepo) Query(_ context.Context, _ *expense.QueryExpensesModel) ([]expense.Expense, error) {
	return nil, nil
}

func (r *fakeExpenseRepo) SumByCategory(_ context.Context, _ *expense.QueryExpensesModel) ([]expense.CategorySum, error) {
	return r.sums, nil
}

func (r *fakeExpenseRepo) SumByMonth(_ context.Context, _ *expense.QueryExpensesModel) ([]expense.MonthlySum, error) {
	return nil, nil
}

func TestDashboardAssemblesAllAggregates(t *testing.T) {
	analyticsRepo := &fakeAnalyticsRepo{
		statusCounts: []analytics.StatusCount{{Status: "placed", Count: 3}},
		revenue:      analytics.RevenueSummary{OrderCount: 3, GrossAmount: 90000, DiscountAmount: 5000, NetAmount: 85000},
		topProducts:  []analytics.TopProduct{{ProductID: 1, ProductName: "Sparkler", QuantitySold: 40}},
	}
	expenseRepo := &fakeExpenseRepo{
		sums: []expense.CategorySum{{Category: "transport", Amount: 12000, Count: 2}},
	}

	svc := MustNewAnalyticsService(WithRepositories(analyticsRepo, expenseRepo))

	dashboard, err := svc.Dashboard(context.Background(), analytics.ReportFilter{})
	require.NoError(t, err)

	assert.Equal(t, analyticsRepo.statusCounts, dashboard.StatusCounts)
	assert.Equal(t, analyticsRepo.revenue, dashboard.Revenue)
	assert.Equal(t, analyticsRepo.topProducts, dashboard.TopProducts)
	assert.Equal(t, expenseRepo.sums, dashboard.Expenses)
}

func TestDashboardFailsWhenAnyQueryFails(t *testing.T) {
	analyticsRepo := &fakeAnalyticsRepo{revenueErr: errors.New("timeout")}
	svc := MustNewAnalyticsService(WithRepositories(analyticsRepo, &fakeExpenseRepo{}))

	_, err := svc.Dashboard(context.Background(), analytics.ReportFilter{})
	assert.Error(t, err)
}
