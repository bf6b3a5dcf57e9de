package dashboard

import (
	"sort"

	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	notAvailable     = "N/A"
	topNationalities = 10
)

type PropertyRevenue struct {
	PropertyName string
	Revenue      decimal.Decimal
}

type CategoryExpense struct {
	Category string
	Amount   decimal.Decimal
}

type NationalityCount struct {
	Nationality string
	Count       int
}

type SharingTypeMargin struct {
	SharingType  string
	ProfitMargin decimal.Decimal
}

type PropertyOccupancy struct {
	PropertyID    string
	PropertyName  string
	OccupancyRate decimal.Decimal
}

type BedspaceTypeOccupancy struct {
	BedspaceType  string
	OccupancyRate decimal.Decimal
}

type MonthlyProjection struct {
	Month   string
	Revenue decimal.Decimal
}

// Breakdowns 分类统计；occupancy 两项为 today 时点值，其余基于所选窗口
type Breakdowns struct {
	RevenueByProperty         []PropertyRevenue
	ExpenseByCategory         []CategoryExpense
	TopNationalities          []NationalityCount
	ProfitMarginBySharingType []SharingTypeMargin
	OccupancyByProperty       []PropertyOccupancy
	OccupancyByBedspaceType   []BedspaceTypeOccupancy
	FutureRevenueProjection   []MonthlyProjection
}

func computeBreakdowns(s *Scoped, period Period, today domain.Date) Breakdowns {
	types := bedspaceTypes(s.Units)
	return Breakdowns{
		RevenueByProperty:         revenueByProperty(s, period),
		ExpenseByCategory:         expenseByCategory(s, period),
		TopNationalities:          nationalityCounts(s.Tenants),
		ProfitMarginBySharingType: profitMarginBySharingType(s, period, types),
		OccupancyByProperty:       occupancyByProperty(s, today),
		OccupancyByBedspaceType:   occupancyByBedspaceType(s, types, today),
		FutureRevenueProjection:   futureRevenueProjection(s, today),
	}
}

// revenueByProperty 窗口内付款按协议所属物业名称分组；无法关联到物业的记为 N/A 并排在最后
func revenueByProperty(s *Scoped, period Period) []PropertyRevenue {
	totals := map[string]decimal.Decimal{}
	for _, p := range s.Payments {
		if !p.PaymentDate.Between(period.Start, period.End) {
			continue
		}
		name := notAvailable
		if b := s.bookingOf(p); b != nil {
			if prop := s.properties[b.PropertyID]; prop != nil && prop.PropertyName != "" {
				name = prop.PropertyName
			}
		}
		totals[name] = totals[name].Add(p.AmountPaid)
	}

	out := make([]PropertyRevenue, 0, len(totals))
	for name, total := range totals {
		out = append(out, PropertyRevenue{PropertyName: name, Revenue: total})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].PropertyName, out[j].PropertyName
		if (a == notAvailable) != (b == notAvailable) {
			return b == notAvailable
		}
		return a < b
	})
	return out
}

func expenseByCategory(s *Scoped, period Period) []CategoryExpense {
	totals := map[string]decimal.Decimal{}
	for _, e := range s.Expenses {
		if !e.ExpenseDate.Between(period.Start, period.End) {
			continue
		}
		category := e.Category
		if category == "" {
			category = notAvailable
		}
		totals[category] = totals[category].Add(e.Amount)
	}

	out := make([]CategoryExpense, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryExpense{Category: category, Amount: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// nationalityCounts 前 10 个国籍；按人数降序，人数相同按国籍升序
func nationalityCounts(tenants []*domain.Tenant) []NationalityCount {
	counts := map[string]int{}
	for _, t := range tenants {
		n := t.Nationality
		if n == "" {
			n = notAvailable
		}
		counts[n]++
	}

	out := make([]NationalityCount, 0, len(counts))
	for n, c := range counts {
		out = append(out, NationalityCount{Nationality: n, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Nationality < out[j].Nationality
	})
	if len(out) > topNationalities {
		out = out[:topNationalities]
	}
	return out
}

// profitMarginBySharingType 按床位类型的利润率。
// 支出无法直接归属到类型，按 (该类型窗口内占用床位 / 窗口内总占用床位) 分摊总支出。
func profitMarginBySharingType(s *Scoped, period Period, types []string) []SharingTypeMargin {
	inPeriod := activeDuring(period.Start, period.End)
	out := make([]SharingTypeMargin, 0, len(types))
	for _, bt := range types {
		revenue := sumPayments(s.Payments, period.Start, period.End, func(p *domain.Payment) bool {
			b := s.bookingOf(p)
			return b != nil && s.bedMatches(b.BedID, "", bt)
		})
		occupied := occupiedBeds(s.Bookings, and(inPeriod, s.ofBedspaceType(bt))).Len()

		allocated := decimal.Zero
		if period.OccupiedBeds > 0 {
			share := decimal.NewFromInt(int64(occupied)).Div(decimal.NewFromInt(int64(period.OccupiedBeds)))
			allocated = share.Mul(period.Expenses)
		}
		out = append(out, SharingTypeMargin{
			SharingType:  bt,
			ProfitMargin: percentOf(revenue.Sub(allocated), revenue),
		})
	}
	return out
}

func occupancyByProperty(s *Scoped, today domain.Date) []PropertyOccupancy {
	props := append([]*domain.Property(nil), s.Properties...)
	sort.SliceStable(props, func(i, j int) bool { return props[i].PropertyName < props[j].PropertyName })

	current := activeOn(today)
	out := make([]PropertyOccupancy, 0, len(props))
	for _, prop := range props {
		id := prop.PropertyID
		total := countBeds(s.Beds, func(b *domain.Bed) bool {
			return b.IsActive && s.bedMatches(b.BedID, id, "")
		})
		occupied := occupiedBeds(s.Bookings, and(current, func(b *domain.BookingAgreement) bool {
			return s.bedMatches(b.BedID, id, "")
		})).Len()
		out = append(out, PropertyOccupancy{
			PropertyID:    id,
			PropertyName:  prop.PropertyName,
			OccupancyRate: occupancyRate(occupied, total),
		})
	}
	return out
}

func occupancyByBedspaceType(s *Scoped, types []string, today domain.Date) []BedspaceTypeOccupancy {
	current := activeOn(today)
	out := make([]BedspaceTypeOccupancy, 0, len(types))
	for _, bt := range types {
		total := countBeds(s.Beds, func(b *domain.Bed) bool {
			return b.IsActive && s.bedMatches(b.BedID, "", bt)
		})
		occupied := occupiedBeds(s.Bookings, and(current, s.ofBedspaceType(bt))).Len()
		out = append(out, BedspaceTypeOccupancy{
			BedspaceType:  bt,
			OccupancyRate: occupancyRate(occupied, total),
		})
	}
	return out
}

// futureRevenueProjection Confirmed/Active 且 check_out > today 的协议租金，按退房月份汇总
func futureRevenueProjection(s *Scoped, today domain.Date) []MonthlyProjection {
	totals := map[string]decimal.Decimal{}
	for _, b := range s.Bookings {
		if !b.IsCommitted() || !b.CheckOutDate.After(today) {
			continue
		}
		m := b.CheckOutDate.Format(monthLabelLayout)
		totals[m] = totals[m].Add(b.RentAmount)
	}
	out := make([]MonthlyProjection, 0, len(totals))
	for m, total := range totals {
		out = append(out, MonthlyProjection{Month: m, Revenue: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// bedspaceTypes 范围内单元的非空床位类型（去重、升序）
func bedspaceTypes(units []*domain.Unit) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, u := range units {
		if u.BedspaceType == "" {
			continue
		}
		if _, ok := seen[u.BedspaceType]; ok {
			continue
		}
		seen[u.BedspaceType] = struct{}{}
		out = append(out, u.BedspaceType)
	}
	sort.Strings(out)
	return out
}

func (s *Scoped) ofBedspaceType(bt string) func(*domain.BookingAgreement) bool {
	return func(b *domain.BookingAgreement) bool {
		return s.bedMatches(b.BedID, "", bt)
	}
}
