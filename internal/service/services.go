package service

import (
	"time"

	"hostelmate-data/internal/cache"
	"hostelmate-data/internal/dashboard"
	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"

	"go.uber.org/zap"
)

// Services HTTP 层依赖的全部服务
type Services struct {
	Properties    *EntityService[domain.Property]
	Units         *EntityService[domain.Unit]
	Beds          *EntityService[domain.Bed]
	Tenants       *EntityService[domain.Tenant]
	Bookings      *EntityService[domain.BookingAgreement]
	Payments      *EntityService[domain.Payment]
	Expenses      *EntityService[domain.Expense]
	Plans         *EntityService[domain.SubscriptionPlan]
	Subscriptions *EntityService[domain.Subscription]
	Dashboard     DashboardService
	Me            *MeService
}

// NewServices 基于同一组仓储构造全部服务
// now 为 nil 时使用 time.Now；dashboardCache 为 nil 时不缓存
func NewServices(
	repos *repository.Repositories,
	now func() time.Time,
	dashboardCache *cache.DashboardCache,
	requireSubscription bool,
	logger *zap.Logger,
) *Services {
	dashboardService := NewDashboardService(repos, dashboard.NewAggregator(now), DashboardServiceOptions{
		Cache:               dashboardCache,
		RequireSubscription: requireSubscription,
	}, logger)

	return &Services{
		Properties:    NewPropertyService(repos, logger),
		Units:         NewUnitService(repos, logger),
		Beds:          NewBedService(repos, logger),
		Tenants:       NewTenantService(repos, logger),
		Bookings:      NewBookingService(repos, logger),
		Payments:      NewPaymentService(repos, logger),
		Expenses:      NewExpenseService(repos, logger),
		Plans:         NewPlanService(repos, logger),
		Subscriptions: NewSubscriptionService(repos, logger),
		Dashboard:     dashboardService,
		Me:            NewMeService(repos.Subscriptions, now),
	}
}
