package dashboard

import "github.com/shopspring/decimal"

// WhatIfBase 假设分析的基准：窗口收入/支出 + 当前（时点）占用率
type WhatIfBase struct {
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	// OccupancyRate 百分比形式（0-100）
	OccupancyRate decimal.Decimal
}

// WhatIf 假设分析结果
type WhatIf struct {
	ProjectedRevenueWithPriceChange decimal.Decimal
	// OccupancyRateWithImpact 百分比形式，限制在 [0, 100]
	OccupancyRateWithImpact       decimal.Decimal
	ProfitMarginWithExpenseImpact decimal.Decimal
}

// ProjectWhatIf 纯函数：对基准值应用三个独立的百分比调整，不修改任何数据
func ProjectWhatIf(base WhatIfBase, sliders Sliders) WhatIf {
	one := decimal.NewFromInt(1)

	revenue := base.Revenue.Mul(one.Add(sliders.PriceChangePercent.Div(hundred)))

	occupancy := base.OccupancyRate.Div(hundred).Mul(one.Add(sliders.OccupancyImpactPercent.Div(hundred)))
	occupancy = decimal.Min(one, decimal.Max(decimal.Zero, occupancy))

	expenses := base.Expenses.Mul(one.Add(sliders.ExpenseIncreasePercent.Div(hundred)))

	return WhatIf{
		ProjectedRevenueWithPriceChange: revenue,
		OccupancyRateWithImpact:         occupancy.Mul(hundred),
		ProfitMarginWithExpenseImpact:   percentOf(base.Revenue.Sub(expenses), base.Revenue),
	}
}
