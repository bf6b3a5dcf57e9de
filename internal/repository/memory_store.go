package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"hostelmate-data/internal/domain"
)

// MemoryStore 用于 DB 未就绪时的联调
// - 按 owner 隔离（ownerOf 返回空字符串表示全局数据）
// - 读写都复制实体，调用方拿到的指针不与存储共享
// - 不做唯一约束与外键校验（由 service 层保证引用存在）
type MemoryStore[T any] struct {
	mu    sync.RWMutex
	items map[string]*T

	idOf       func(*T) string
	ownerOf    func(*T) string
	less       func(a, b *T) bool
	clone      func(*T) *T
	// timestamps 返回 created_at / updated_at 字段地址
	timestamps func(*T) (createdAt, updatedAt *time.Time)
}

func (s *MemoryStore[T]) visible(caller domain.Caller, v *T) bool {
	owner := s.ownerOf(v)
	return owner == "" || caller.Owns(owner)
}

func (s *MemoryStore[T]) copy(v *T) *T {
	if s.clone != nil {
		return s.clone(v)
	}
	c := *v
	return &c
}

func (s *MemoryStore[T]) List(_ context.Context, caller domain.Caller) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*T{}
	for _, v := range s.items {
		if s.visible(caller, v) {
			out = append(out, s.copy(v))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if s.less != nil {
			if s.less(a, b) {
				return true
			}
			if s.less(b, a) {
				return false
			}
		}
		return s.idOf(a) < s.idOf(b)
	})
	return out, nil
}

func (s *MemoryStore[T]) Get(_ context.Context, caller domain.Caller, id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[id]
	if !ok || !s.visible(caller, v) {
		return nil, ErrNotFound
	}
	return s.copy(v), nil
}

func (s *MemoryStore[T]) Create(_ context.Context, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.copy(v)
	s.stamp(c, nil)
	s.items[s.idOf(c)] = c
	return nil
}

func (s *MemoryStore[T]) Update(_ context.Context, caller domain.Caller, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.idOf(v)
	old, ok := s.items[id]
	if !ok || !s.visible(caller, old) {
		return ErrNotFound
	}
	c := s.copy(v)
	s.stamp(c, old)
	s.items[id] = c
	return nil
}

// stamp 维护时间戳：更新时保留原 created_at
func (s *MemoryStore[T]) stamp(v, old *T) {
	if s.timestamps == nil {
		return
	}
	now := time.Now()
	createdAt, updatedAt := s.timestamps(v)
	if old != nil {
		prev, _ := s.timestamps(old)
		*createdAt = *prev
	} else if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func (s *MemoryStore[T]) Delete(_ context.Context, caller domain.Caller, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[id]
	if !ok || !s.visible(caller, v) {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// MemorySubscriptionsStore 订阅的内存实现
type MemorySubscriptionsStore struct {
	*MemoryStore[domain.Subscription]
}

func (s *MemorySubscriptionsStore) HasActiveSubscription(_ context.Context, ownerID string, today domain.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.items {
		if sub.OwnerID == ownerID && sub.ActiveOn(today) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemorySubscriptionsStore) DeactivateExpired(_ context.Context, today domain.Date) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, sub := range s.items {
		if sub.IsActive && sub.EndDate.Before(today) {
			sub.IsActive = false
			sub.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

// NewMemoryRepositories 全部仓储的内存实现
func NewMemoryRepositories() *Repositories {
	r := &Repositories{
		Properties: &MemoryStore[domain.Property]{
			items:      map[string]*domain.Property{},
			idOf:       func(p *domain.Property) string { return p.PropertyID },
			ownerOf:    func(p *domain.Property) string { return p.OwnerID },
			less:       func(a, b *domain.Property) bool { return a.PropertyName < b.PropertyName },
			timestamps: func(p *domain.Property) (*time.Time, *time.Time) { return &p.CreatedAt, &p.UpdatedAt },
		},
		Units: &MemoryStore[domain.Unit]{
			items:      map[string]*domain.Unit{},
			idOf:       func(u *domain.Unit) string { return u.UnitID },
			ownerOf:    func(u *domain.Unit) string { return u.OwnerID },
			less:       func(a, b *domain.Unit) bool { return a.UnitNumber < b.UnitNumber },
			timestamps: func(u *domain.Unit) (*time.Time, *time.Time) { return &u.CreatedAt, &u.UpdatedAt },
		},
		Beds: &MemoryStore[domain.Bed]{
			items:      map[string]*domain.Bed{},
			idOf:       func(b *domain.Bed) string { return b.BedID },
			ownerOf:    func(b *domain.Bed) string { return b.OwnerID },
			less:       func(a, b *domain.Bed) bool { return a.BedNumber < b.BedNumber },
			timestamps: func(b *domain.Bed) (*time.Time, *time.Time) { return &b.CreatedAt, &b.UpdatedAt },
		},
		Tenants: &MemoryStore[domain.Tenant]{
			items:      map[string]*domain.Tenant{},
			idOf:       func(t *domain.Tenant) string { return t.TenantID },
			ownerOf:    func(t *domain.Tenant) string { return t.OwnerID },
			less:       func(a, b *domain.Tenant) bool { return a.TenantName < b.TenantName },
			timestamps: func(t *domain.Tenant) (*time.Time, *time.Time) { return &t.CreatedAt, &t.UpdatedAt },
		},
		Bookings: &MemoryStore[domain.BookingAgreement]{
			items:      map[string]*domain.BookingAgreement{},
			idOf:       func(b *domain.BookingAgreement) string { return b.BookingID },
			ownerOf:    func(b *domain.BookingAgreement) string { return b.OwnerID },
			less:       func(a, b *domain.BookingAgreement) bool { return a.CheckInDate.After(b.CheckInDate) },
			timestamps: func(b *domain.BookingAgreement) (*time.Time, *time.Time) { return &b.CreatedAt, &b.UpdatedAt },
		},
		Payments: &MemoryStore[domain.Payment]{
			items:      map[string]*domain.Payment{},
			idOf:       func(p *domain.Payment) string { return p.PaymentID },
			ownerOf:    func(p *domain.Payment) string { return p.OwnerID },
			less:       func(a, b *domain.Payment) bool { return a.PaymentDate.After(b.PaymentDate) },
			timestamps: func(p *domain.Payment) (*time.Time, *time.Time) { return &p.CreatedAt, &p.UpdatedAt },
		},
		Expenses: &MemoryStore[domain.Expense]{
			items:   map[string]*domain.Expense{},
			idOf:    func(e *domain.Expense) string { return e.ExpenseID },
			ownerOf: func(e *domain.Expense) string { return e.OwnerID },
			less:    func(a, b *domain.Expense) bool { return a.ExpenseDate.After(b.ExpenseDate) },
			clone: func(e *domain.Expense) *domain.Expense {
				c := *e
				c.UnitIDs = slices.Clone(e.UnitIDs)
				return &c
			},
			timestamps: func(e *domain.Expense) (*time.Time, *time.Time) { return &e.CreatedAt, &e.UpdatedAt },
		},
		Plans: &MemoryStore[domain.SubscriptionPlan]{
			items:   map[string]*domain.SubscriptionPlan{},
			idOf:    func(p *domain.SubscriptionPlan) string { return p.PlanID },
			ownerOf: func(*domain.SubscriptionPlan) string { return "" },
			less:    func(a, b *domain.SubscriptionPlan) bool { return a.Price.LessThan(b.Price) },
			clone: func(p *domain.SubscriptionPlan) *domain.SubscriptionPlan {
				c := *p
				c.Features = slices.Clone(p.Features)
				return &c
			},
			timestamps: func(p *domain.SubscriptionPlan) (*time.Time, *time.Time) { return &p.CreatedAt, &p.UpdatedAt },
		},
		Subscriptions: &MemorySubscriptionsStore{MemoryStore: &MemoryStore[domain.Subscription]{
			items:      map[string]*domain.Subscription{},
			idOf:       func(s *domain.Subscription) string { return s.SubscriptionID },
			ownerOf:    func(s *domain.Subscription) string { return s.OwnerID },
			less:       func(a, b *domain.Subscription) bool { return a.StartDate.After(b.StartDate) },
			timestamps: func(s *domain.Subscription) (*time.Time, *time.Time) { return &s.CreatedAt, &s.UpdatedAt },
		}},
	}
	r.Dataset = newDatasetLoader(r)
	return r
}
