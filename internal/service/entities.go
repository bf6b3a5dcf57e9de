package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"

	"go.uber.org/zap"
)

// lookup 引用校验：空 id 视为缺失，不存在（或属于其他 owner）视为非法引用
func lookup[T any](ctx context.Context, store repository.Store[T], refs domain.Caller, field, id string) (*T, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidInput(field, "is required")
	}
	v, err := store.Get(ctx, refs, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidInput(field, "does not exist")
		}
		return nil, fmt.Errorf("failed to check %s: %w", field, err)
	}
	return v, nil
}

func privilegedOnly(caller domain.Caller) bool { return caller.Privileged }

// NewPropertyService 物业
func NewPropertyService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Property] {
	return newEntityService(r.Properties, entityRules[domain.Property]{
		name:  "property",
		id:    func(p *domain.Property) *string { return &p.PropertyID },
		owner: func(p *domain.Property) *string { return &p.OwnerID },
	}, logger)
}

// NewUnitService 单元：property 必须属于同一 owner
func NewUnitService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Unit] {
	return newEntityService(r.Units, entityRules[domain.Unit]{
		name:  "unit",
		id:    func(u *domain.Unit) *string { return &u.UnitID },
		owner: func(u *domain.Unit) *string { return &u.OwnerID },
		prepare: func(ctx context.Context, refs domain.Caller, u *domain.Unit) error {
			if u.RentPerBed.IsNegative() {
				return invalidInput("rent_per_bed", "must not be negative")
			}
			_, err := lookup(ctx, r.Properties, refs, "property_id", u.PropertyID)
			return err
		},
	}, logger)
}

// NewBedService 床位：unit 必须属于同一 owner
func NewBedService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Bed] {
	return newEntityService(r.Beds, entityRules[domain.Bed]{
		name:  "bed",
		id:    func(b *domain.Bed) *string { return &b.BedID },
		owner: func(b *domain.Bed) *string { return &b.OwnerID },
		prepare: func(ctx context.Context, refs domain.Caller, b *domain.Bed) error {
			_, err := lookup(ctx, r.Units, refs, "unit_id", b.UnitID)
			return err
		},
	}, logger)
}

// NewTenantService 住客
func NewTenantService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Tenant] {
	return newEntityService(r.Tenants, entityRules[domain.Tenant]{
		name:  "tenant",
		id:    func(t *domain.Tenant) *string { return &t.TenantID },
		owner: func(t *domain.Tenant) *string { return &t.OwnerID },
	}, logger)
}

// NewBookingService 入住协议
// unit_id / property_id 由 bed 推导，请求体中的值被忽略
func NewBookingService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.BookingAgreement] {
	return newEntityService(r.Bookings, entityRules[domain.BookingAgreement]{
		name:  "booking agreement",
		id:    func(b *domain.BookingAgreement) *string { return &b.BookingID },
		owner: func(b *domain.BookingAgreement) *string { return &b.OwnerID },
		prepare: func(ctx context.Context, refs domain.Caller, b *domain.BookingAgreement) error {
			// 1. 日期
			if b.CheckInDate.IsZero() {
				return invalidInput("check_in_date", "is required")
			}
			if b.CheckOutDate.IsZero() {
				return invalidInput("check_out_date", "is required")
			}
			if b.CheckOutDate.Before(b.CheckInDate) {
				return invalidInput("check_out_date", "must not be before check_in_date")
			}
			if b.RentAmount.IsNegative() || b.DepositAmount.IsNegative() {
				return invalidInput("rent_amount", "amounts must not be negative")
			}
			if b.BookingStatus == "" {
				b.BookingStatus = domain.BookingConfirmed
			}

			// 2. 引用
			if _, err := lookup(ctx, r.Tenants, refs, "tenant_id", b.TenantID); err != nil {
				return err
			}
			bed, err := lookup(ctx, r.Beds, refs, "bed_id", b.BedID)
			if err != nil {
				return err
			}
			unit, err := lookup(ctx, r.Units, refs, "bed_id", bed.UnitID)
			if err != nil {
				return err
			}

			// 3. 派生字段
			b.UnitID = unit.UnitID
			b.PropertyID = unit.PropertyID
			return nil
		},
	}, logger)
}

// NewPaymentService 付款：booking 可选，但若指定必须属于同一 tenant
func NewPaymentService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Payment] {
	return newEntityService(r.Payments, entityRules[domain.Payment]{
		name:  "payment",
		id:    func(p *domain.Payment) *string { return &p.PaymentID },
		owner: func(p *domain.Payment) *string { return &p.OwnerID },
		prepare: func(ctx context.Context, refs domain.Caller, p *domain.Payment) error {
			if p.PaymentDate.IsZero() {
				return invalidInput("payment_date", "is required")
			}
			if !p.AmountPaid.IsPositive() {
				return invalidInput("amount_paid", "must be positive")
			}
			if strings.TrimSpace(p.PaymentMethod) == "" {
				p.PaymentMethod = domain.DefaultPaymentMethod
			}
			if _, err := lookup(ctx, r.Tenants, refs, "tenant_id", p.TenantID); err != nil {
				return err
			}
			p.BookingID = strings.TrimSpace(p.BookingID)
			if p.BookingID == "" {
				return nil
			}
			booking, err := lookup(ctx, r.Bookings, refs, "booking_id", p.BookingID)
			if err != nil {
				return err
			}
			if booking.TenantID != p.TenantID {
				return invalidInput("booking_id", "belongs to a different tenant")
			}
			return nil
		},
	}, logger)
}

// NewExpenseService 支出：property 可选；units 必须存在，指定 property 时必须属于该 property
func NewExpenseService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Expense] {
	return newEntityService(r.Expenses, entityRules[domain.Expense]{
		name:  "expense",
		id:    func(e *domain.Expense) *string { return &e.ExpenseID },
		owner: func(e *domain.Expense) *string { return &e.OwnerID },
		prepare: func(ctx context.Context, refs domain.Caller, e *domain.Expense) error {
			if e.ExpenseDate.IsZero() {
				return invalidInput("expense_date", "is required")
			}
			if !e.Amount.IsPositive() {
				return invalidInput("amount", "must be positive")
			}
			e.PropertyID = strings.TrimSpace(e.PropertyID)
			if e.PropertyID != "" {
				if _, err := lookup(ctx, r.Properties, refs, "property_id", e.PropertyID); err != nil {
					return err
				}
			}
			if e.UnitIDs == nil {
				e.UnitIDs = []string{}
			}
			for _, unitID := range e.UnitIDs {
				unit, err := lookup(ctx, r.Units, refs, "unit_ids", unitID)
				if err != nil {
					return err
				}
				if e.PropertyID != "" && unit.PropertyID != e.PropertyID {
					return invalidInput("unit_ids", "unit "+unitID+" is not in property "+e.PropertyID)
				}
			}
			return nil
		},
	}, logger)
}

// NewPlanService 订阅套餐：全局数据，只有特权调用方可以写
func NewPlanService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.SubscriptionPlan] {
	return newEntityService(r.Plans, entityRules[domain.SubscriptionPlan]{
		name: "subscription plan",
		id:   func(p *domain.SubscriptionPlan) *string { return &p.PlanID },
		prepare: func(_ context.Context, _ domain.Caller, p *domain.SubscriptionPlan) error {
			if p.Price.IsNegative() {
				return invalidInput("price", "must not be negative")
			}
			if p.Features == nil {
				p.Features = []string{}
			}
			return nil
		},
		canWrite: privilegedOnly,
	}, logger)
}

// NewSubscriptionService 订阅：end_date 缺省为 start_date 加上套餐时长
func NewSubscriptionService(r *repository.Repositories, logger *zap.Logger) *EntityService[domain.Subscription] {
	return newEntityService[domain.Subscription](r.Subscriptions, entityRules[domain.Subscription]{
		name:  "subscription",
		id:    func(s *domain.Subscription) *string { return &s.SubscriptionID },
		owner: func(s *domain.Subscription) *string { return &s.OwnerID },
		prepare: func(ctx context.Context, refs domain.Caller, s *domain.Subscription) error {
			if s.StartDate.IsZero() {
				return invalidInput("start_date", "is required")
			}
			plan, err := lookup(ctx, r.Plans, refs, "plan_id", s.PlanID)
			if err != nil {
				return err
			}
			if s.EndDate.IsZero() {
				s.EndDate = s.StartDate.AddMonths(plan.DurationMonths)
			}
			if s.EndDate.Before(s.StartDate) {
				return invalidInput("end_date", "must not be before start_date")
			}
			return nil
		},
	}, logger)
}
