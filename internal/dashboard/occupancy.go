package dashboard

import (
	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// bedSet 去重后的床位集合；占用数一律是 distinct bed 数，而非协议数
type bedSet map[string]struct{}

func (b bedSet) Len() int { return len(b) }

// occupiedBeds 满足 pred 的协议所占用的床位集合
func occupiedBeds(bookings []*domain.BookingAgreement, pred func(*domain.BookingAgreement) bool) bedSet {
	out := bedSet{}
	for _, b := range bookings {
		if pred(b) {
			out[b.BedID] = struct{}{}
		}
	}
	return out
}

// activeOn Active 且覆盖 day 的协议
func activeOn(day domain.Date) func(*domain.BookingAgreement) bool {
	return func(b *domain.BookingAgreement) bool {
		return b.IsActive() && b.Spans(day)
	}
}

// activeDuring Active 且与 [start, end] 有交集的协议
func activeDuring(start, end domain.Date) func(*domain.BookingAgreement) bool {
	return func(b *domain.BookingAgreement) bool {
		return b.IsActive() && b.Overlaps(start, end)
	}
}

func and(preds ...func(*domain.BookingAgreement) bool) func(*domain.BookingAgreement) bool {
	return func(b *domain.BookingAgreement) bool {
		for _, p := range preds {
			if !p(b) {
				return false
			}
		}
		return true
	}
}

// countBeds 统计满足 pred 的床位数
func countBeds(beds []*domain.Bed, pred func(*domain.Bed) bool) int {
	n := 0
	for _, b := range beds {
		if pred(b) {
			n++
		}
	}
	return n
}

func isActiveBed(b *domain.Bed) bool { return b.IsActive }

// occupancyRate 占用率（百分比），分母为 0 时返回 0；结果限制在 [0, 100]
func occupancyRate(occupied, total int) decimal.Decimal {
	if total <= 0 || occupied <= 0 {
		return decimal.Zero
	}
	if occupied > total {
		occupied = total
	}
	return decimal.NewFromInt(int64(occupied)).Div(decimal.NewFromInt(int64(total))).Mul(hundred)
}

// percentOf part / whole × 100，whole <= 0 时返回 0
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// perBed 平均到每月每床：total / months / beds，beds 为 0 时返回 0
func perBed(total decimal.Decimal, months, beds int) decimal.Decimal {
	if beds <= 0 || months <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(months))).Div(decimal.NewFromInt(int64(beds)))
}
