package service

import (
	"context"
	"time"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SubscriptionSweeper 定时将过期订阅置为失效（end_date < today）
type SubscriptionSweeper struct {
	subscriptions repository.SubscriptionsRepository
	cron          *cron.Cron
	now           func() time.Time
	logger        *zap.Logger
}

func NewSubscriptionSweeper(subscriptions repository.SubscriptionsRepository, logger *zap.Logger) *SubscriptionSweeper {
	return &SubscriptionSweeper{
		subscriptions: subscriptions,
		cron:          cron.New(),
		now:           time.Now,
		logger:        logger,
	}
}

// Start 按 schedule（标准 5 段 cron 表达式）注册任务并启动调度
func (s *SubscriptionSweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = s.Sweep(ctx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Subscription sweeper started", zap.String("schedule", schedule))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
func (s *SubscriptionSweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep 执行一次清理
func (s *SubscriptionSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.subscriptions.DeactivateExpired(ctx, domain.DateOf(s.now()))
	if err != nil {
		s.logger.Error("Failed to deactivate expired subscriptions", zap.Error(err))
		return 0, err
	}
	s.logger.Info("Deactivated expired subscriptions", zap.Int64("count", n))
	return n, nil
}
