package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionPlan 订阅套餐（全局数据，不按 owner 隔离）
type SubscriptionPlan struct {
	PlanID         string          `db:"plan_id" json:"plan_id"`
	PlanName       string          `db:"plan_name" json:"plan_name" validate:"required,max=100"`
	Description    string          `db:"description" json:"description"`
	Price          decimal.Decimal `db:"price" json:"price"`
	DurationMonths int             `db:"duration_months" json:"duration_months" validate:"gte=1"`
	Features       []string        `db:"features" json:"features"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Subscription owner 的订阅记录
type Subscription struct {
	SubscriptionID string    `db:"subscription_id" json:"subscription_id"`
	OwnerID        string    `db:"owner_id" json:"owner_id"`
	PlanID         string    `db:"plan_id" json:"plan_id" validate:"required"`
	StartDate      Date      `db:"start_date" json:"start_date"`
	EndDate        Date      `db:"end_date" json:"end_date"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ActiveOn 在 today 当天是否有效
func (s *Subscription) ActiveOn(today Date) bool {
	return s.IsActive && !s.EndDate.Before(today)
}
