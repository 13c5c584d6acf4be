package ianalyticsrepo

import (
	"context"

	"github.com/crackersmart/storefront/internal/service/models/analytics"
)

type IAnalyticsRepository interface {
	CountByStatus(ctx context.Context, filter analytics.ReportFilter) ([]analytics.StatusCount, error)
	RevenueSummary(ctx context.Context, filter analytics.ReportFilter) (*analytics.RevenueSummary, error)
	MonthlyRevenue(ctx context.Context, filter analytics.ReportFilter) ([]analytics.MonthlyRevenue, error)
	TopProducts(ctx context.Context, filter analytics.ReportFilter, limit int) ([]analytics.TopProduct, error)
}
