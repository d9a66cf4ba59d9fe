package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amasa-erp/amasa-erp/internal/aging"
	"github.com/amasa-erp/amasa-erp/internal/ap"
	"github.com/amasa-erp/amasa-erp/internal/ar"
	"github.com/amasa-erp/amasa-erp/internal/cashflow"
	"github.com/amasa-erp/amasa-erp/internal/ledger"
	"github.com/amasa-erp/amasa-erp/internal/ledger/reports"
	"github.com/amasa-erp/amasa-erp/internal/shared"
)

// SalesPort exposes the receivable figures the dashboard needs.
type SalesPort interface {
	Totals(ctx context.Context, req ar.ListRequest) (ar.Totals, error)
	Aging(ctx context.Context, asOf time.Time) (aging.Schedule, error)
}

// PurchasesPort exposes the payable figures the dashboard needs.
type PurchasesPort interface {
	Totals(ctx context.Context, req ap.ListRequest) (ar.Totals, error)
	Aging(ctx context.Context, asOf time.Time) (aging.Schedule, error)
}

// CashflowPort exposes the projection accumulators.
type CashflowPort interface {
	MonthlyProjection(ctx context.Context, r shared.DateRange) ([]cashflow.MonthlyPeriod, error)
	DailyBalances(ctx context.Context, r shared.DateRange) ([]cashflow.DailyBalance, error)
}

// LedgerPort exposes aggregated account balances.
type LedgerPort interface {
	AccountTotals(ctx context.Context, r shared.DateRange) ([]ledger.AccountTotals, error)
}

// Dashboard is the consolidated management view for one month.
type Dashboard struct {
	Period    string                   `json:"period"`
	Sales     ar.Totals                `json:"sales"`
	Purchases ar.Totals                `json:"purchases"`
	ARAging   aging.Schedule           `json:"ar_aging"`
	APAging   aging.Schedule           `json:"ap_aging"`
	Cashflow  []cashflow.MonthlyPeriod `json:"cashflow"`
}

// Service assembles cached management reports from the finance modules.
type Service struct {
	cache     *Cache
	sales     SalesPort
	purchases PurchasesPort
	cash      CashflowPort
	ledger    LedgerPort
	chart     ledger.ChartPort
	now       func() time.Time
}

// NewService constructs the reporting service. The cache may be nil.
func NewService(cache *Cache, sales SalesPort, purchases PurchasesPort, cash CashflowPort, gl LedgerPort, chart ledger.ChartPort) *Service {
	return &Service{
		cache:     cache,
		sales:     sales,
		purchases: purchases,
		cash:      cash,
		ledger:    gl,
		chart:     chart,
		now:       time.Now,
	}
}

// WithNow overrides the clock for deterministic tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// GetDashboard loads the monthly dashboard, fanning out to each module
// in parallel on a cache miss. Period uses the YYYY-MM form.
func (s *Service) GetDashboard(ctx context.Context, period string) (Dashboard, error) {
	month, err := time.Parse("2006-01", period)
	if err != nil {
		return Dashboard{}, err
	}
	key, err := s.cache.BuildKey(ctx, keyDashboard(period)...)
	if err != nil {
		return Dashboard{}, err
	}
	var dashboard Dashboard
	err = s.cache.FetchJSON(ctx, key, &dashboard, func(ctx context.Context) (interface{}, error) {
		return s.loadDashboard(ctx, period, month)
	})
	return dashboard, err
}

func (s *Service) loadDashboard(ctx context.Context, period string, month time.Time) (Dashboard, error) {
	monthRange := shared.MonthRange(month)
	asOf := monthRange.To

	dashboard := Dashboard{Period: period}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.sales.Totals(ctx, ar.ListRequest{Range: monthRange})
		if err != nil {
			return err
		}
		dashboard.Sales = totals
		return nil
	})
	g.Go(func() error {
		totals, err := s.purchases.Totals(ctx, ap.ListRequest{Range: monthRange})
		if err != nil {
			return err
		}
		dashboard.Purchases = totals
		return nil
	})
	g.Go(func() error {
		schedule, err := s.sales.Aging(ctx, asOf)
		if err != nil {
			return err
		}
		dashboard.ARAging = schedule
		return nil
	})
	g.Go(func() error {
		schedule, err := s.purchases.Aging(ctx, asOf)
		if err != nil {
			return err
		}
		dashboard.APAging = schedule
		return nil
	})
	g.Go(func() error {
		periods, err := s.cash.MonthlyProjection(ctx, monthRange)
		if err != nil {
			return err
		}
		dashboard.Cashflow = periods
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return dashboard, nil
}

// GetEightColumn builds the classified eight-column balance over the range.
func (s *Service) GetEightColumn(ctx context.Context, r shared.DateRange) (reports.EightColumnBalance, error) {
	key, err := s.cache.BuildKey(ctx, keyEightColumn(rangeTokens(r))...)
	if err != nil {
		return reports.EightColumnBalance{}, err
	}
	var balance reports.EightColumnBalance
	err = s.cache.FetchJSON(ctx, key, &balance, func(ctx context.Context) (interface{}, error) {
		accounts, err := s.ledger.AccountTotals(ctx, r)
		if err != nil {
			return nil, err
		}
		types, err := s.chart.AccountTypes(ctx)
		if err != nil {
			return nil, err
		}
		return reports.BuildEightColumn(accounts, types), nil
	})
	return balance, err
}

// GetMonthlyCashflow loads the cached month-by-month projection.
func (s *Service) GetMonthlyCashflow(ctx context.Context, r shared.DateRange) ([]cashflow.MonthlyPeriod, error) {
	key, err := s.cache.BuildKey(ctx, keyMonthlyCashflow(rangeTokens(r))...)
	if err != nil {
		return nil, err
	}
	var periods []cashflow.MonthlyPeriod
	err = s.cache.FetchJSON(ctx, key, &periods, func(ctx context.Context) (interface{}, error) {
		return s.cash.MonthlyProjection(ctx, r)
	})
	return periods, err
}

// GetARAging loads the cached receivable aging schedule.
func (s *Service) GetARAging(ctx context.Context, asOf time.Time) (aging.Schedule, error) {
	return s.cachedAging(ctx, "ar", asOf, s.sales.Aging)
}

// GetAPAging loads the cached payable aging schedule.
func (s *Service) GetAPAging(ctx context.Context, asOf time.Time) (aging.Schedule, error) {
	return s.cachedAging(ctx, "ap", asOf, s.purchases.Aging)
}

func (s *Service) cachedAging(ctx context.Context, side string, asOf time.Time, load func(context.Context, time.Time) (aging.Schedule, error)) (aging.Schedule, error) {
	if asOf.IsZero() {
		asOf = shared.Day(s.now())
	}
	key, err := s.cache.BuildKey(ctx, keyAging(side, asOf)...)
	if err != nil {
		return aging.Schedule{}, err
	}
	var schedule aging.Schedule
	err = s.cache.FetchJSON(ctx, key, &schedule, func(ctx context.Context) (interface{}, error) {
		return load(ctx, asOf)
	})
	return schedule, err
}

// Invalidate bumps the cache version after source data changes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func rangeTokens(r shared.DateRange) (string, string) {
	if r.IsZero() {
		return "all", "all"
	}
	return r.From.Format("2006-01-02"), r.To.Format("2006-01-02")
}
