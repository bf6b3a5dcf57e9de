package repository

import (
	"context"
	"errors"

	"hostelmate-data/internal/domain"
)

// ErrNotFound 记录不存在，或不属于调用方（两者对外不做区分）
var ErrNotFound = errors.New("record not found")

// Store 按 owner 隔离的实体仓储
// - 非特权调用方的读写都附加 owner 条件
// - Create 时 owner 已由 service 层写入实体
type Store[T any] interface {
	List(ctx context.Context, caller domain.Caller) ([]*T, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, caller domain.Caller, v *T) error
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

// SubscriptionsRepository 订阅仓储（在 Store 基础上提供有效性判断与过期清理）
type SubscriptionsRepository interface {
	Store[domain.Subscription]
	// HasActiveSubscription 存在 is_active 且 end_date >= today 的订阅
	HasActiveSubscription(ctx context.Context, ownerID string, today domain.Date) (bool, error)
	// DeactivateExpired 将 end_date < today 的有效订阅置为失效，返回影响行数
	DeactivateExpired(ctx context.Context, today domain.Date) (int64, error)
}

// DatasetRepository 仪表盘取数：返回调用方可见的七类数据
type DatasetRepository interface {
	LoadDataset(ctx context.Context, caller domain.Caller) (*domain.Dataset, error)
}

// Repositories 全部仓储的集合（Postgres 或内存实现）
type Repositories struct {
	Properties    Store[domain.Property]
	Units         Store[domain.Unit]
	Beds          Store[domain.Bed]
	Tenants       Store[domain.Tenant]
	Bookings      Store[domain.BookingAgreement]
	Payments      Store[domain.Payment]
	Expenses      Store[domain.Expense]
	Plans         Store[domain.SubscriptionPlan]
	Subscriptions SubscriptionsRepository
	Dataset       DatasetRepository
}
