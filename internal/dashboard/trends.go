package dashboard

import (
	"iter"
	"slices"

	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

const monthLabelLayout = "2006-01"

// MonthlyPoint 月度趋势的一个点
type MonthlyPoint struct {
	Month         string
	Start         domain.Date
	End           domain.Date
	Revenue       decimal.Decimal
	Expenses      decimal.Decimal
	Profit        decimal.Decimal
	OccupancyRate decimal.Decimal
}

// TrendSeries 从 start 所在月第一天起、逐月步进到 end 的有限序列。
// All 每次调用都从头开始迭代，可重复遍历。
type TrendSeries struct {
	scoped     *Scoped
	start      domain.Date
	end        domain.Date
	activeBeds int
}

func newTrendSeries(s *Scoped, start, end domain.Date) *TrendSeries {
	return &TrendSeries{
		scoped:     s,
		start:      start.MonthStart(),
		end:        end,
		activeBeds: countBeds(s.Beds, isActiveBed),
	}
}

// All 逐月产出趋势点，月初超过 end 时结束
func (t *TrendSeries) All() iter.Seq[MonthlyPoint] {
	return func(yield func(MonthlyPoint) bool) {
		for month := t.start; !month.After(t.end); month = month.AddMonths(1) {
			if !yield(t.point(month)) {
				return
			}
		}
	}
}

// Collect 物化整个序列
func (t *TrendSeries) Collect() []MonthlyPoint {
	out := slices.Collect(t.All())
	if out == nil {
		out = []MonthlyPoint{}
	}
	return out
}

func (t *TrendSeries) point(monthStart domain.Date) MonthlyPoint {
	monthEnd := monthStart.MonthEnd()
	revenue := sumPayments(t.scoped.Payments, monthStart, monthEnd, nil)
	expenses := sumExpenses(t.scoped.Expenses, monthStart, monthEnd, nil)
	occupied := occupiedBeds(t.scoped.Bookings, activeDuring(monthStart, monthEnd)).Len()
	return MonthlyPoint{
		Month:         monthStart.Format(monthLabelLayout),
		Start:         monthStart,
		End:           monthEnd,
		Revenue:       revenue,
		Expenses:      expenses,
		Profit:        revenue.Sub(expenses),
		OccupancyRate: occupancyRate(occupied, t.activeBeds),
	}
}
