package httpapi

import (
	"bytes"
	"fmt"

	"hostelmate-data/internal/dashboard"

	"github.com/xuri/excelize/v2"
)

// 工作表名称
const (
	SheetKPIs       = "KPIs"
	SheetTrends     = "Monthly Trends"
	SheetBreakdowns = "Breakdowns"
	SheetWhatIf     = "What-If"
)

// sheetTable 一张表：表头 + 数据行
type sheetTable struct {
	title   string // 非空时在表头上方写一行标题
	headers []string
	rows    [][]any
}

// GenerateDashboardWorkbook 生成仪表盘导出 Excel 文件
// KPIs / Monthly Trends / Breakdowns / What-If 四个工作表
func GenerateDashboardWorkbook(p *dashboard.Payload) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo 需要文件保持打开，出错路径上统一 Close
	fail := func(err error) ([]byte, error) {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fail(fmt.Errorf("failed to create header style: %w", err))
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return fail(fmt.Errorf("failed to create title style: %w", err))
	}

	sheets := []struct {
		name   string
		tables []sheetTable
	}{
		{SheetKPIs, []sheetTable{kpiTable(p)}},
		{SheetTrends, []sheetTable{trendTable(p)}},
		{SheetBreakdowns, breakdownTables(p)},
		{SheetWhatIf, []sheetTable{whatIfTable(p)}},
	}

	for i, s := range sheets {
		// 第一个工作表直接重命名默认的 Sheet1
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fail(fmt.Errorf("failed to rename sheet: %w", err))
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fail(fmt.Errorf("failed to create sheet %s: %w", s.name, err))
		}

		row := 1
		for _, t := range s.tables {
			next, err := writeTable(f, s.name, row, t, headerStyle, titleStyle)
			if err != nil {
				return fail(err)
			}
			row = next + 1
		}
		if err := f.SetColWidth(s.name, "A", "F", 22); err != nil {
			return fail(fmt.Errorf("failed to set column width: %w", err))
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fail(fmt.Errorf("failed to write to buffer: %w", err))
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable 从 startRow 开始写入一张表，返回下一个空行
func writeTable(f *excelize.File, sheet string, startRow int, t sheetTable, headerStyle, titleStyle int) (int, error) {
	row := startRow
	if t.title != "" {
		if err := setCellValue(f, sheet, 1, row, t.title); err != nil {
			return 0, err
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStyle(sheet, cell, cell, titleStyle); err != nil {
			return 0, fmt.Errorf("failed to set title style: %w", err)
		}
		row++
	}

	for col, header := range t.headers {
		if err := setCellValue(f, sheet, col+1, row, header); err != nil {
			return 0, err
		}
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(t.headers), row)
	if err := f.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return 0, fmt.Errorf("failed to set header style: %w", err)
	}
	row++

	for _, values := range t.rows {
		for col, v := range values {
			if err := setCellValue(f, sheet, col+1, row, v); err != nil {
				return 0, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
		}
		row++
	}
	return row, nil
}

// setCellValue 设置单元格值
func setCellValue(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func kpiTable(p *dashboard.Payload) sheetTable {
	k := p.KPIs
	return sheetTable{
		headers: []string{"Metric", "Value"},
		rows: [][]any{
			{"Selected Start Date", k.SelectedStartDate},
			{"Selected End Date", k.SelectedEndDate},
			{"Total Properties", k.TotalProperties},
			{"Total Units", k.TotalUnits},
			{"Total Beds", k.TotalBedsInSystem},
			{"Active Beds Available", k.TotalActiveBedsAvailable},
			{"Occupied Beds", k.CurrentOccupiedBedsCount},
			{"Vacant Beds", k.VacantBeds},
			{"Occupancy Rate (%)", k.CurrentOccupancyRate},
			{"Total Tenants", k.TotalTenants},
			{"New Tenants This Month", k.NewTenantsThisMonth},
			{"Active Bookings", k.ActiveBookingsCount},
			{"Pending Amount", k.PendingAmount},
			{"People With Pending Rent", k.NumPeoplePendingRent},
			{"Fully Paid Bookings", k.NumFullyPaidBookings},
			{"Due Soon", k.NumPeopleDueSoon},
			{"Due", k.NumPeopleDue},
			{"Overdue", k.NumPeopleOverdue},
			{"Revenue (Period)", k.TotalRevenuePeriod},
			{"Expenses (Period)", k.TotalExpensesPeriod},
			{"Operating Profit", k.OperatingProfit},
			{"Profit Margin (%)", k.ProfitMargin},
			{"Months In Period", k.NumMonthsInPeriod},
			{"Occupied Beds In Period", k.TotalOccupiedBedsInPeriod},
			{"Avg Monthly Revenue Per Bed", k.AvgMonthlyRevenuePerBed},
			{"Avg Variable Monthly Expense Per Bed", k.AvgVariableExpensePerBed},
			{"Fixed Expenses", k.TotalFixedMonthlyExpenses},
			{"Variable Expenses", k.TotalVariableExpenses},
			{"Break-Even Occupancy (%)", k.BreakEvenOccupancy},
			{"Avg Price Per Bedspace", k.AvgPricePerBedspace},
			{"Projected Future Revenue", k.ProjectedFutureRevenue},
			{"Monthly Expected Revenue", k.TotalMonthlyExpectedRevenue},
		},
	}
}

func trendTable(p *dashboard.Payload) sheetTable {
	t := sheetTable{headers: []string{"Month", "Revenue", "Expenses", "Profit", "Occupancy Rate (%)"}}
	for _, m := range p.Charts.MonthlyTrends {
		t.rows = append(t.rows, []any{m.Month, m.Revenue, m.Expenses, m.Profit, m.OccupancyRate})
	}
	return t
}

func breakdownTables(p *dashboard.Payload) []sheetTable {
	c := p.Charts

	revenue := sheetTable{title: "Revenue by Property", headers: []string{"Property", "Revenue"}}
	for _, r := range c.RevenueByProperty {
		revenue.rows = append(revenue.rows, []any{r.PropertyName, r.Revenue})
	}
	expense := sheetTable{title: "Expense by Category", headers: []string{"Category", "Amount"}}
	for _, r := range c.ExpenseByCategory {
		expense.rows = append(expense.rows, []any{r.Category, r.Amount})
	}
	nationality := sheetTable{title: "Top Nationalities", headers: []string{"Nationality", "Tenants"}}
	for _, r := range c.TopNationalities {
		nationality.rows = append(nationality.rows, []any{r.Nationality, r.Count})
	}
	margin := sheetTable{title: "Profit Margin by Sharing Type", headers: []string{"Sharing Type", "Profit Margin (%)"}}
	for _, r := range c.ProfitMarginBySharingType {
		margin.rows = append(margin.rows, []any{r.SharingType, r.ProfitMargin})
	}
	byProperty := sheetTable{title: "Occupancy by Property", headers: []string{"Property", "Occupancy Rate (%)"}}
	for _, r := range c.OccupancyByProperty {
		byProperty.rows = append(byProperty.rows, []any{r.PropertyName, r.OccupancyRate})
	}
	byType := sheetTable{title: "Occupancy by Bedspace Type", headers: []string{"Bedspace Type", "Occupancy Rate (%)"}}
	for _, r := range c.OccupancyRateByBedspaceType {
		byType.rows = append(byType.rows, []any{r.BedspaceType, r.OccupancyRate})
	}
	projection := sheetTable{title: "Future Revenue Projection", headers: []string{"Month", "Revenue"}}
	for _, r := range c.FutureRevenueProjectionChart {
		projection.rows = append(projection.rows, []any{r.Month, r.Revenue})
	}

	return []sheetTable{revenue, expense, nationality, margin, byProperty, byType, projection}
}

func whatIfTable(p *dashboard.Payload) sheetTable {
	wi := p.WhatIf
	return sheetTable{
		headers: []string{"Scenario", "Value"},
		rows: [][]any{
			{"Projected Revenue With Price Change", wi.ProjectedRevenueWithPriceChange},
			{"Occupancy Rate With Impact (%)", wi.OccupancyRateWithImpact},
			{"Profit Margin With Expense Impact (%)", wi.ProfitMarginWithExpenseImpact},
		},
	}
}
