package dashboard

import (
	"hostelmate-data/internal/domain"
)

// TenantScope 一次请求的数据范围：调用方 + 维度过滤
// 每个请求只构造一次，并传入所有子计算
type TenantScope struct {
	Caller  domain.Caller
	Filters Filters
}

// Scoped 已收敛的数据集，附带原始（仅 owner 隔离）数据的索引，
// 用于沿 bed→unit→property、booking→tenant 等关系链查找
type Scoped struct {
	domain.Dataset

	units      map[string]*domain.Unit
	beds       map[string]*domain.Bed
	properties map[string]*domain.Property
	tenants    map[string]*domain.Tenant
	bookings   map[string]*domain.BookingAgreement

	// bookingsByTenant 租客的全部协议（不受维度过滤影响）
	bookingsByTenant map[string][]*domain.BookingAgreement
}

// OwnedBy 按 owner 隔离；特权调用方不做限制
func (s TenantScope) OwnedBy(ownerID string) bool {
	return s.Caller.Owns(ownerID)
}

// ResolveScope 在 owner 数据集上应用维度过滤，产出七类已收敛集合。
// raw 中不属于调用方的数据会先被剔除，仓储层已做 owner 过滤时这一步不改变结果。
func ResolveScope(scope TenantScope, raw *domain.Dataset) *Scoped {
	s := &Scoped{
		units:            map[string]*domain.Unit{},
		beds:             map[string]*domain.Bed{},
		properties:       map[string]*domain.Property{},
		tenants:          map[string]*domain.Tenant{},
		bookings:         map[string]*domain.BookingAgreement{},
		bookingsByTenant: map[string][]*domain.BookingAgreement{},
	}
	if raw == nil {
		raw = &domain.Dataset{}
	}

	// 1. owner 隔离 + 建索引
	owned := domain.Dataset{}
	for _, p := range raw.Properties {
		if scope.OwnedBy(p.OwnerID) {
			owned.Properties = append(owned.Properties, p)
			s.properties[p.PropertyID] = p
		}
	}
	for _, u := range raw.Units {
		if scope.OwnedBy(u.OwnerID) {
			owned.Units = append(owned.Units, u)
			s.units[u.UnitID] = u
		}
	}
	for _, b := range raw.Beds {
		if scope.OwnedBy(b.OwnerID) {
			owned.Beds = append(owned.Beds, b)
			s.beds[b.BedID] = b
		}
	}
	for _, t := range raw.Tenants {
		if scope.OwnedBy(t.OwnerID) {
			owned.Tenants = append(owned.Tenants, t)
			s.tenants[t.TenantID] = t
		}
	}
	for _, b := range raw.Bookings {
		if scope.OwnedBy(b.OwnerID) {
			owned.Bookings = append(owned.Bookings, b)
			s.bookings[b.BookingID] = b
			s.bookingsByTenant[b.TenantID] = append(s.bookingsByTenant[b.TenantID], b)
		}
	}
	for _, p := range raw.Payments {
		if scope.OwnedBy(p.OwnerID) {
			owned.Payments = append(owned.Payments, p)
		}
	}
	for _, e := range raw.Expenses {
		if scope.OwnedBy(e.OwnerID) {
			owned.Expenses = append(owned.Expenses, e)
		}
	}

	// 2. 维度过滤（传递式，AND 组合）
	f := scope.Filters
	s.Properties = filter(owned.Properties, func(p *domain.Property) bool {
		return f.PropertyID == "" || p.PropertyID == f.PropertyID
	})
	s.Units = filter(owned.Units, func(u *domain.Unit) bool {
		return f.PropertyID == "" || u.PropertyID == f.PropertyID
	})
	s.Beds = filter(owned.Beds, func(b *domain.Bed) bool {
		return s.bedMatches(b.BedID, f.PropertyID, f.BedspaceType)
	})
	s.Bookings = filter(owned.Bookings, func(b *domain.BookingAgreement) bool {
		return s.bookingMatches(b, f)
	})
	s.Tenants = filter(owned.Tenants, func(t *domain.Tenant) bool {
		if f.Nationality != "" && t.Nationality != f.Nationality {
			return false
		}
		// property 与 bedspace_type 各自要求存在一条匹配的协议（可以不是同一条）
		if f.PropertyID != "" && !s.tenantHasBooking(t.TenantID, func(b *domain.BookingAgreement) bool {
			return s.bedMatches(b.BedID, f.PropertyID, "")
		}) {
			return false
		}
		if f.BedspaceType != "" && !s.tenantHasBooking(t.TenantID, func(b *domain.BookingAgreement) bool {
			return s.bedMatches(b.BedID, "", f.BedspaceType)
		}) {
			return false
		}
		return true
	})
	s.Payments = filter(owned.Payments, func(p *domain.Payment) bool {
		if f.PropertyID == "" && f.BedspaceType == "" && f.Nationality == "" {
			return true
		}
		// 需要经由协议判断的过滤条件下，未关联协议的付款被排除
		b := s.bookings[p.BookingID]
		if b == nil {
			return false
		}
		return s.bookingMatches(b, f)
	})
	s.Expenses = filter(owned.Expenses, func(e *domain.Expense) bool {
		if f.PropertyID != "" && e.PropertyID != f.PropertyID {
			return false
		}
		return f.ExpenseCategory == "" || e.Category == f.ExpenseCategory
	})
	return s
}

// bedMatches bed→unit 的 property / bedspace_type 匹配；空条件视为匹配
func (s *Scoped) bedMatches(bedID, propertyID, bedspaceType string) bool {
	if propertyID == "" && bedspaceType == "" {
		return true
	}
	u := s.unitOfBed(bedID)
	if u == nil {
		return false
	}
	if propertyID != "" && u.PropertyID != propertyID {
		return false
	}
	return bedspaceType == "" || u.BedspaceType == bedspaceType
}

func (s *Scoped) bookingMatches(b *domain.BookingAgreement, f Filters) bool {
	if !s.bedMatches(b.BedID, f.PropertyID, f.BedspaceType) {
		return false
	}
	if f.Nationality != "" {
		t := s.tenants[b.TenantID]
		if t == nil || t.Nationality != f.Nationality {
			return false
		}
	}
	return true
}

func (s *Scoped) tenantHasBooking(tenantID string, pred func(*domain.BookingAgreement) bool) bool {
	for _, b := range s.bookingsByTenant[tenantID] {
		if pred(b) {
			return true
		}
	}
	return false
}

func (s *Scoped) unitOfBed(bedID string) *domain.Unit {
	b := s.beds[bedID]
	if b == nil {
		return nil
	}
	return s.units[b.UnitID]
}

// bookingOf 付款关联的协议（未关联或不在范围内返回 nil）
func (s *Scoped) bookingOf(p *domain.Payment) *domain.BookingAgreement {
	if p.BookingID == "" {
		return nil
	}
	return s.bookings[p.BookingID]
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
