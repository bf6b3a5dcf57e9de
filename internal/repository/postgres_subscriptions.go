package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hostelmate-data/internal/domain"
)

// NewPostgresPlansStore subscription_plans 表（全局数据，无 owner 列）
func NewPostgresPlansStore(db *sql.DB) *PostgresStore[domain.SubscriptionPlan] {
	return newPostgresStore(db, entityTable[domain.SubscriptionPlan]{
		name:  "subscription_plans",
		alias: "sp",
		id:    "plan_id",
		selects: []string{
			"sp.plan_id::text", "sp.plan_name", "sp.description", "sp.price",
			"sp.duration_months", "sp.features", "sp.created_at", "sp.updated_at",
		},
		writes:  []string{"plan_name", "description", "price", "duration_months", "features"},
		orderBy: "sp.price, sp.plan_name",
		scan: func(row rowScanner) (*domain.SubscriptionPlan, error) {
			var p domain.SubscriptionPlan
			var features []byte
			if err := row.Scan(&p.PlanID, &p.PlanName, &p.Description, &p.Price,
				&p.DurationMonths, &features, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, err
			}
			p.Features = []string{}
			if len(features) > 0 {
				if err := json.Unmarshal(features, &p.Features); err != nil {
					return nil, fmt.Errorf("decode features: %w", err)
				}
			}
			return &p, nil
		},
		keys: func(p *domain.SubscriptionPlan) (string, string) { return p.PlanID, "" },
		values: func(p *domain.SubscriptionPlan) []any {
			features := p.Features
			if features == nil {
				features = []string{}
			}
			raw, _ := json.Marshal(features)
			return []any{p.PlanName, p.Description, p.Price, p.DurationMonths, string(raw)}
		},
	})
}

// PostgresSubscriptionsStore subscriptions 表
type PostgresSubscriptionsStore struct {
	*PostgresStore[domain.Subscription]
}

func NewPostgresSubscriptionsStore(db *sql.DB) *PostgresSubscriptionsStore {
	return &PostgresSubscriptionsStore{PostgresStore: newPostgresStore(db, entityTable[domain.Subscription]{
		name:  "subscriptions",
		alias: "s",
		id:    "subscription_id",
		owner: "owner_id",
		selects: []string{
			"s.subscription_id::text", "s.owner_id::text", "s.plan_id::text",
			"s.start_date", "s.end_date", "s.is_active", "s.created_at", "s.updated_at",
		},
		writes:  []string{"plan_id", "start_date", "end_date", "is_active"},
		orderBy: "s.start_date DESC, s.subscription_id",
		scan: func(row rowScanner) (*domain.Subscription, error) {
			var s domain.Subscription
			err := row.Scan(&s.SubscriptionID, &s.OwnerID, &s.PlanID,
				&s.StartDate, &s.EndDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
			return &s, err
		},
		keys: func(s *domain.Subscription) (string, string) { return s.SubscriptionID, s.OwnerID },
		values: func(s *domain.Subscription) []any {
			return []any{s.PlanID, s.StartDate, s.EndDate, s.IsActive}
		},
	})}
}

func (r *PostgresSubscriptionsStore) HasActiveSubscription(ctx context.Context, ownerID string, today domain.Date) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE owner_id = $1 AND is_active = TRUE AND end_date >= $2
		)
	`, ownerID, today).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active subscription: %w", err)
	}
	return exists, nil
}

func (r *PostgresSubscriptionsStore) DeactivateExpired(ctx context.Context, today domain.Date) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND end_date < $1
	`, today)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired subscriptions: %w", err)
	}
	return res.RowsAffected()
}

// NewPostgresRepositories 基于同一个 *sql.DB 构造全部仓储
func NewPostgresRepositories(db *sql.DB) *Repositories {
	r := &Repositories{
		Properties:    NewPostgresPropertiesStore(db),
		Units:         NewPostgresUnitsStore(db),
		Beds:          NewPostgresBedsStore(db),
		Tenants:       NewPostgresTenantsStore(db),
		Bookings:      NewPostgresBookingsStore(db),
		Payments:      NewPostgresPaymentsStore(db),
		Expenses:      NewPostgresExpensesStore(db),
		Plans:         NewPostgresPlansStore(db),
		Subscriptions: NewPostgresSubscriptionsStore(db),
	}
	r.Dataset = newDatasetLoader(r)
	return r
}
