package service

import (
	"context"
	"fmt"
	"net/url"

	"hostelmate-data/internal/cache"
	"hostelmate-data/internal/dashboard"
	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"

	"go.uber.org/zap"
)

// DashboardService 仪表盘服务：参数校验 → 订阅检查 → 缓存 → 取数 → 聚合
type DashboardService interface {
	GetDashboard(ctx context.Context, caller domain.Caller, values url.Values) (*dashboard.Payload, error)
}

type dashboardService struct {
	datasets            repository.DatasetRepository
	subscriptions       repository.SubscriptionsRepository
	aggregator          *dashboard.Aggregator
	cache               *cache.DashboardCache // nil 表示不缓存
	requireSubscription bool
	logger              *zap.Logger
}

// DashboardServiceOptions 可选项
type DashboardServiceOptions struct {
	Cache               *cache.DashboardCache
	RequireSubscription bool
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	repos *repository.Repositories,
	aggregator *dashboard.Aggregator,
	opts DashboardServiceOptions,
	logger *zap.Logger,
) DashboardService {
	return &dashboardService{
		datasets:            repos.Dataset,
		subscriptions:       repos.Subscriptions,
		aggregator:          aggregator,
		cache:               opts.Cache,
		requireSubscription: opts.RequireSubscription,
		logger:              logger,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, caller domain.Caller, values url.Values) (*dashboard.Payload, error) {
	today := s.aggregator.Today()

	// 1. 参数校验（在任何取数之前）
	q, err := dashboard.ParseQuery(values, today)
	if err != nil {
		return nil, err
	}

	// 2. 订阅检查
	if s.requireSubscription && !caller.Privileged {
		ok, err := s.subscriptions.HasActiveSubscription(ctx, caller.OwnerID, today)
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		if !ok {
			return nil, ErrSubscriptionRequired
		}
	}

	// 3. 缓存
	var key string
	if s.cache != nil {
		key = s.cache.Key(caller, today, values)
		if p, ok := s.cache.Get(ctx, key); ok {
			return p, nil
		}
	}

	// 4. 取数：任一子查询失败则整个请求失败，不返回部分结果
	ds, err := s.datasets.LoadDataset(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard dataset: %w", err)
	}

	// 5. 聚合
	p := s.aggregator.Build(dashboard.TenantScope{Caller: caller, Filters: q.Filters}, q, ds)
	s.logger.Debug("Built dashboard",
		zap.String("owner_id", caller.OwnerID),
		zap.Bool("privileged", caller.Privileged),
		zap.String("start_date", q.Start.String()),
		zap.String("end_date", q.End.String()),
	)

	if s.cache != nil {
		s.cache.Set(ctx, key, p)
	}
	return p, nil
}
