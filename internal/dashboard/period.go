package dashboard

import (
	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

// fixedExpenseCategories 固定成本类别，其余均视为可变成本
var fixedExpenseCategories = map[string]bool{
	"Rent":     true,
	"Salaries": true,
}

func isFixedExpense(e *domain.Expense) bool    { return fixedExpenseCategories[e.Category] }
func isVariableExpense(e *domain.Expense) bool { return !fixedExpenseCategories[e.Category] }

// Period 所选窗口 [Start, End]（闭区间）内的汇总指标
type Period struct {
	Start  domain.Date
	End    domain.Date
	Months int

	Revenue         decimal.Decimal
	Expenses        decimal.Decimal
	OperatingProfit decimal.Decimal
	ProfitMargin    decimal.Decimal

	// OccupiedBeds 与窗口有交集的 Active 协议所占床位（distinct）
	OccupiedBeds int

	AvgMonthlyRevenuePerBed         decimal.Decimal
	FixedExpenses                   decimal.Decimal
	VariableExpenses                decimal.Decimal
	AvgVariableMonthlyExpensePerBed decimal.Decimal
	BreakEvenOccupancy              decimal.Decimal
	AvgPricePerBedspace             decimal.Decimal

	// 以下两项以 today 为基准，与所选窗口无关
	ProjectedFutureRevenue decimal.Decimal
	MonthlyExpectedRevenue decimal.Decimal
}

func computePeriod(s *Scoped, start, end, today domain.Date) Period {
	p := Period{
		Start:  start,
		End:    end,
		Months: monthsInPeriod(start, end),
	}

	p.Revenue = sumPayments(s.Payments, start, end, nil)
	p.Expenses = sumExpenses(s.Expenses, start, end, nil)
	p.OperatingProfit = p.Revenue.Sub(p.Expenses)
	p.ProfitMargin = percentOf(p.OperatingProfit, p.Revenue)

	p.OccupiedBeds = occupiedBeds(s.Bookings, activeDuring(start, end)).Len()
	p.AvgMonthlyRevenuePerBed = perBed(p.Revenue, p.Months, p.OccupiedBeds)

	p.FixedExpenses = sumExpenses(s.Expenses, start, end, isFixedExpense)
	p.VariableExpenses = sumExpenses(s.Expenses, start, end, isVariableExpense)
	p.AvgVariableMonthlyExpensePerBed = perBed(p.VariableExpenses, p.Months, p.OccupiedBeds)

	// 边际贡献保本点：单床边际 <= 0 时无定义，记为 0
	margin := p.AvgMonthlyRevenuePerBed.Sub(p.AvgVariableMonthlyExpensePerBed)
	if margin.GreaterThan(decimal.Zero) {
		p.BreakEvenOccupancy = decimal.Max(decimal.Zero, p.FixedExpenses.Div(margin))
	} else {
		p.BreakEvenOccupancy = decimal.Zero
	}

	if p.OccupiedBeds > 0 {
		p.AvgPricePerBedspace = p.Revenue.Div(decimal.NewFromInt(int64(p.OccupiedBeds)))
	} else {
		p.AvgPricePerBedspace = decimal.Zero
	}

	p.ProjectedFutureRevenue = sumRent(s.Bookings, func(b *domain.BookingAgreement) bool {
		return b.IsCommitted() && b.CheckOutDate.After(today)
	})
	monthStart := today.MonthStart()
	p.MonthlyExpectedRevenue = sumRent(s.Bookings, func(b *domain.BookingAgreement) bool {
		return b.IsCommitted() && !b.CheckInDate.After(today) && !b.CheckOutDate.Before(monthStart)
	})
	return p
}
