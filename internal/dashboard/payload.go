package dashboard

import "github.com/shopspring/decimal"

// Payload 仪表盘响应：kpis / charts_data / what_if_analysis 三组
// 所有金额与比率在此处统一四舍五入到 2 位小数
type Payload struct {
	KPIs   KPIs           `json:"kpis"`
	Charts Charts         `json:"charts_data"`
	WhatIf WhatIfAnalysis `json:"what_if_analysis"`
}

type KPIs struct {
	TotalProperties             int     `json:"total_properties"`
	TotalUnits                  int     `json:"total_units"`
	TotalBedsInSystem           int     `json:"total_beds_in_system"`
	CurrentOccupiedBedsCount    int     `json:"current_occupied_beds_count"`
	TotalActiveBedsAvailable    int     `json:"total_active_beds_available"`
	VacantBeds                  int     `json:"vacant_beds"`
	CurrentOccupancyRate        float64 `json:"current_occupancy_rate"`
	TotalTenants                int     `json:"total_tenants"`
	PendingAmount               float64 `json:"pending_amount"`
	NumPeoplePendingRent        int     `json:"num_people_pending_rent"`
	NewTenantsThisMonth         int     `json:"new_tenants_this_month"`
	ActiveBookingsCount         int     `json:"active_bookings_count"`
	ActualRevenue               float64 `json:"actual_revenue"`
	TotalRevenuePeriod          float64 `json:"total_revenue_period"`
	TotalExpensesPeriod         float64 `json:"total_expenses_period"`
	OperatingProfit             float64 `json:"operating_profit"`
	ProfitMargin                float64 `json:"profit_margin"`
	NumMonthsInPeriod           int     `json:"num_months_in_period"`
	TotalOccupiedBedsInPeriod   int     `json:"total_occupied_beds_in_period"`
	AvgMonthlyRevenuePerBed     float64 `json:"avg_monthly_revenue_per_bed"`
	AvgVariableExpensePerBed    float64 `json:"avg_variable_monthly_expense_per_bed"`
	BreakEvenOccupancy          float64 `json:"break_even_occupancy"`
	AvgPricePerBedspace         float64 `json:"avg_price_per_bedspace"`
	ProjectedFutureRevenue      float64 `json:"projected_future_revenue"`
	TotalMonthlyExpectedRevenue float64 `json:"total_monthly_expected_revenue"`
	TotalFixedMonthlyExpenses   float64 `json:"total_fixed_monthly_expenses"`
	TotalVariableExpenses       float64 `json:"total_variable_monthly_expenses"`
	TotalPaymentsCollected      float64 `json:"total_payments_collected"`
	NumFullyPaidBookings        int     `json:"num_fully_paid_bookings"`
	NumPeopleDueSoon            int     `json:"num_people_due_soon"`
	NumPeopleDue                int     `json:"num_people_due"`
	NumPeopleOverdue            int     `json:"num_people_overdue"`
	SelectedStartDate           string  `json:"selected_start_date"`
	SelectedEndDate             string  `json:"selected_end_date"`
}

type Charts struct {
	MonthlyTrends                []TrendRow           `json:"monthly_trends"`
	RevenueByProperty            []PropertyRevenueRow `json:"revenue_by_property"`
	ExpenseByCategory            []CategoryRow        `json:"expense_by_category"`
	TopNationalities             []NationalityRow     `json:"top_nationalities"`
	ProfitMarginBySharingType    []SharingTypeRow     `json:"profit_margin_by_sharing_type"`
	OccupancyByProperty          []PropertyRateRow    `json:"occupancy_by_property"`
	OccupancyRateByBedspaceType  []BedspaceRateRow    `json:"occupancy_rate_by_bedspace_type"`
	FutureRevenueProjectionChart []ProjectionRow      `json:"future_revenue_projection_chart"`
}

type TrendRow struct {
	Month         string  `json:"month"`
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	Profit        float64 `json:"profit"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type PropertyRevenueRow struct {
	PropertyName string  `json:"property_name"`
	Revenue      float64 `json:"revenue"`
}

type CategoryRow struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type NationalityRow struct {
	Nationality string `json:"nationality"`
	Count       int    `json:"count"`
}

type SharingTypeRow struct {
	SharingType  string  `json:"sharing_type"`
	ProfitMargin float64 `json:"profit_margin"`
}

type PropertyRateRow struct {
	PropertyID    string  `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type BedspaceRateRow struct {
	BedspaceType  string  `json:"bedspace_type"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type ProjectionRow struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type WhatIfAnalysis struct {
	ProjectedRevenueWithPriceChange float64 `json:"projected_revenue_with_price_change"`
	OccupancyRateWithImpact         float64 `json:"occupancy_rate_with_impact"`
	ProfitMarginWithExpenseImpact   float64 `json:"profit_margin_with_expense_impact"`
}

// round2 展示层舍入（2 位小数），之前的计算全部使用 decimal
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func newPayload(snap Snapshot, period Period, trends []MonthlyPoint, bd Breakdowns, wi WhatIf) *Payload {
	p := &Payload{
		KPIs: KPIs{
			TotalProperties:             snap.TotalProperties,
			TotalUnits:                  snap.TotalUnits,
			TotalBedsInSystem:           snap.TotalBedsInSystem,
			CurrentOccupiedBedsCount:    snap.OccupiedBeds,
			TotalActiveBedsAvailable:    snap.ActiveBedsAvailable,
			VacantBeds:                  snap.VacantBeds,
			CurrentOccupancyRate:        round2(snap.OccupancyRate),
			TotalTenants:                snap.TotalTenants,
			PendingAmount:               round2(snap.PendingAmount),
			NumPeoplePendingRent:        snap.NumPeoplePendingRent,
			NewTenantsThisMonth:         snap.NewTenantsThisMonth,
			ActiveBookingsCount:         snap.ActiveBookingsCount,
			ActualRevenue:               round2(period.Revenue),
			TotalRevenuePeriod:          round2(period.Revenue),
			TotalExpensesPeriod:         round2(period.Expenses),
			OperatingProfit:             round2(period.OperatingProfit),
			ProfitMargin:                round2(period.ProfitMargin),
			NumMonthsInPeriod:           period.Months,
			TotalOccupiedBedsInPeriod:   period.OccupiedBeds,
			AvgMonthlyRevenuePerBed:     round2(period.AvgMonthlyRevenuePerBed),
			AvgVariableExpensePerBed:    round2(period.AvgVariableMonthlyExpensePerBed),
			BreakEvenOccupancy:          round2(period.BreakEvenOccupancy),
			AvgPricePerBedspace:         round2(period.AvgPricePerBedspace),
			ProjectedFutureRevenue:      round2(period.ProjectedFutureRevenue),
			TotalMonthlyExpectedRevenue: round2(period.MonthlyExpectedRevenue),
			TotalFixedMonthlyExpenses:   round2(period.FixedExpenses),
			TotalVariableExpenses:       round2(period.VariableExpenses),
			TotalPaymentsCollected:      round2(period.Revenue),
			NumFullyPaidBookings:        snap.NumFullyPaidBookings,
			NumPeopleDueSoon:            snap.NumDueSoon,
			NumPeopleDue:                snap.NumDue,
			NumPeopleOverdue:            snap.NumOverdue,
			SelectedStartDate:           period.Start.String(),
			SelectedEndDate:             period.End.String(),
		},
		WhatIf: WhatIfAnalysis{
			ProjectedRevenueWithPriceChange: round2(wi.ProjectedRevenueWithPriceChange),
			OccupancyRateWithImpact:         round2(wi.OccupancyRateWithImpact),
			ProfitMarginWithExpenseImpact:   round2(wi.ProfitMarginWithExpenseImpact),
		},
	}

	c := &p.Charts
	c.MonthlyTrends = make([]TrendRow, 0, len(trends))
	for _, m := range trends {
		c.MonthlyTrends = append(c.MonthlyTrends, TrendRow{
			Month:         m.Month,
			Revenue:       round2(m.Revenue),
			Expenses:      round2(m.Expenses),
			Profit:        round2(m.Profit),
			OccupancyRate: round2(m.OccupancyRate),
		})
	}
	c.RevenueByProperty = make([]PropertyRevenueRow, 0, len(bd.RevenueByProperty))
	for _, r := range bd.RevenueByProperty {
		c.RevenueByProperty = append(c.RevenueByProperty, PropertyRevenueRow{PropertyName: r.PropertyName, Revenue: round2(r.Revenue)})
	}
	c.ExpenseByCategory = make([]CategoryRow, 0, len(bd.ExpenseByCategory))
	for _, r := range bd.ExpenseByCategory {
		c.ExpenseByCategory = append(c.ExpenseByCategory, CategoryRow{Category: r.Category, Amount: round2(r.Amount)})
	}
	c.TopNationalities = make([]NationalityRow, 0, len(bd.TopNationalities))
	for _, r := range bd.TopNationalities {
		c.TopNationalities = append(c.TopNationalities, NationalityRow{Nationality: r.Nationality, Count: r.Count})
	}
	c.ProfitMarginBySharingType = make([]SharingTypeRow, 0, len(bd.ProfitMarginBySharingType))
	for _, r := range bd.ProfitMarginBySharingType {
		c.ProfitMarginBySharingType = append(c.ProfitMarginBySharingType, SharingTypeRow{SharingType: r.SharingType, ProfitMargin: round2(r.ProfitMargin)})
	}
	c.OccupancyByProperty = make([]PropertyRateRow, 0, len(bd.OccupancyByProperty))
	for _, r := range bd.OccupancyByProperty {
		c.OccupancyByProperty = append(c.OccupancyByProperty, PropertyRateRow{PropertyID: r.PropertyID, PropertyName: r.PropertyName, OccupancyRate: round2(r.OccupancyRate)})
	}
	c.OccupancyRateByBedspaceType = make([]BedspaceRateRow, 0, len(bd.OccupancyByBedspaceType))
	for _, r := range bd.OccupancyByBedspaceType {
		c.OccupancyRateByBedspaceType = append(c.OccupancyRateByBedspaceType, BedspaceRateRow{BedspaceType: r.BedspaceType, OccupancyRate: round2(r.OccupancyRate)})
	}
	c.FutureRevenueProjectionChart = make([]ProjectionRow, 0, len(bd.FutureRevenueProjection))
	for _, r := range bd.FutureRevenueProjection {
		c.FutureRevenueProjectionChart = append(c.FutureRevenueProjectionChart, ProjectionRow{Month: r.Month, Revenue: round2(r.Revenue)})
	}
	return p
}
