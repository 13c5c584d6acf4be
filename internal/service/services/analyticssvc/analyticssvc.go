package analyticssvc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/crackersmart/storefront/internal/dal/interfaces/ianalyticsrepo"
	"github.com/crackersmart/storefront/internal/dal/interfaces/iexpenserepo"
	"github.com/crackersmart/storefront/internal/dal/postgres"
	analyticsrepo "github.com/crackersmart/storefront/internal/dal/repositories/analytics/postgres"
	expenserepo "github.com/crackersmart/storefront/internal/dal/repositories/expense/postgres"
	"github.com/crackersmart/storefront/internal/service/models/analytics"
	"github.com/crackersmart/storefront/internal/service/models/expense"
)

const topProductsLimit = 10

// AnalyticsService assembles the admin dashboard from order and expense
// aggregates.
type AnalyticsService struct {
	analyticsRepo ianalyticsrepo.IAnalyticsRepository
	expenseRepo   iexpenserepo.IExpenseRepository
}

// option is a function that configures the AnalyticsService.
type option func(*AnalyticsService)

// MustNewAnalyticsService creates a new AnalyticsService.
func MustNewAnalyticsService(opts ...option) *AnalyticsService {
	s := &AnalyticsService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.analyticsRepo == nil || s.expenseRepo == nil {
		panic("analyticssvc: repositories not configured")
	}

	return s
}

// WithPostgresClient wires the service to Postgres-backed repositories.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *AnalyticsService) {
		s.analyticsRepo = analyticsrepo.NewPostgresAnalyticsRepository(pgClient.Pool())
		s.expenseRepo = expenserepo.NewPostgresExpenseRepository(pgClient.Pool())
	}
}

// WithRepositories injects repositories directly. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepositories(analyticsRepo ianalyticsrepo.IAnalyticsRepository, expenseRepo iexpenserepo.IExpenseRepository) option {
	return func(s *AnalyticsService) {
		s.analyticsRepo = analyticsRepo
		s.expenseRepo = expenseRepo
	}
}

// Dashboard gathers the five dashboard aggregates concurrently. Any single
// query failing fails the whole report.
func (s *AnalyticsService) Dashboard(ctx context.Context, filter analytics.ReportFilter) (*analytics.Dashboard, error) {
	var dashboard analytics.Dashboard

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.analyticsRepo.CountByStatus(ctx, filter)
		if err != nil {
			return err
		}
		dashboard.StatusCounts = counts

		return nil
	})

	g.Go(func() error {
		revenue, err := s.analyticsRepo.RevenueSummary(ctx, filter)
		if err != nil {
			return err
		}
		dashboard.Revenue = *revenue

		return nil
	})

	g.Go(func() error {
		monthly, err := s.analyticsRepo.MonthlyRevenue(ctx, filter)
		if err != nil {
			return err
		}
		dashboard.Monthly = monthly

		return nil
	})

	g.Go(func() error {
		top, err := s.analyticsRepo.TopProducts(ctx, filter, topProductsLimit)
		if err != nil {
			return err
		}
		dashboard.TopProducts = top

		return nil
	})

	g.Go(func() error {
		sums, err := s.expenseRepo.SumByCategory(ctx, &expense.QueryExpensesModel{
			From: filter.From,
			To:   filter.To,
		})
		if err != nil {
			return err
		}
		dashboard.Expenses = sums

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard, nil
}
