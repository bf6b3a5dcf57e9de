package dashboard

import (
	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

// 到期提醒窗口（天）
const (
	dueSoonDays = 5
	dueDays     = 2
	overdueDays = 1
)

// Snapshot 以 today 为准的时点指标，不受所选窗口影响
type Snapshot struct {
	TotalProperties   int
	TotalUnits        int
	TotalBedsInSystem int
	TotalTenants      int

	OccupiedBeds        int
	ActiveBedsAvailable int
	VacantBeds          int
	OccupancyRate       decimal.Decimal
	ActiveBookingsCount int

	PendingAmount        decimal.Decimal
	NumPeoplePendingRent int
	NumFullyPaidBookings int

	// 三个到期桶按构造相互重叠（due ⊂ due_soon），不是划分
	NumDueSoon int
	NumDue     int
	NumOverdue int

	NewTenantsThisMonth int
}

func computeSnapshot(s *Scoped, today domain.Date) Snapshot {
	snap := Snapshot{
		TotalProperties:   len(s.Properties),
		TotalUnits:        len(s.Units),
		TotalBedsInSystem: len(s.Beds),
		TotalTenants:      len(s.Tenants),
	}

	// 1. 当前占用
	isCurrent := activeOn(today)
	snap.OccupiedBeds = occupiedBeds(s.Bookings, isCurrent).Len()
	snap.ActiveBedsAvailable = countBeds(s.Beds, isActiveBed)
	snap.VacantBeds = snap.ActiveBedsAvailable - snap.OccupiedBeds
	if snap.VacantBeds < 0 {
		snap.VacantBeds = 0
	}
	snap.OccupancyRate = occupancyRate(snap.OccupiedBeds, snap.ActiveBedsAvailable)

	// 2. 待收租金：当前 Active 协议，付款截止到 today
	current := map[string]*domain.BookingAgreement{}
	for _, b := range s.Bookings {
		if isCurrent(b) {
			current[b.BookingID] = b
			snap.ActiveBookingsCount++
		}
	}
	paid := map[string]decimal.Decimal{}
	for _, p := range s.Payments {
		if _, ok := current[p.BookingID]; !ok || p.PaymentDate.After(today) {
			continue
		}
		paid[p.BookingID] = paid[p.BookingID].Add(p.AmountPaid)
	}
	expected, collected := decimal.Zero, decimal.Zero
	pendingTenants := map[string]struct{}{}
	for id, b := range current {
		expected = expected.Add(b.RentAmount)
		collected = collected.Add(paid[id])
		if paid[id].LessThan(b.RentAmount) {
			pendingTenants[b.TenantID] = struct{}{}
		} else {
			snap.NumFullyPaidBookings++
		}
	}
	snap.PendingAmount = expected.Sub(collected)
	snap.NumPeoplePendingRent = len(pendingTenants)

	// 3. 到期桶（按退房日期相对 today）
	dueSoonLimit := today.AddDays(dueSoonDays)
	dueLimit := today.AddDays(dueDays)
	overdueBefore := today.AddDays(-overdueDays)
	for _, b := range s.Bookings {
		if !b.IsActive() {
			continue
		}
		out := b.CheckOutDate
		if out.After(today) && !out.After(dueSoonLimit) {
			snap.NumDueSoon++
		}
		if out.After(today) && !out.After(dueLimit) {
			snap.NumDue++
		}
		if out.Before(overdueBefore) {
			snap.NumOverdue++
		}
	}

	// 4. 本月新入住租客
	for _, t := range s.Tenants {
		for _, b := range s.bookingsByTenant[t.TenantID] {
			if b.CheckInDate.Year() == today.Year() && b.CheckInDate.Month() == today.Month() {
				snap.NewTenantsThisMonth++
				break
			}
		}
	}
	return snap
}
