package dashboard

import (
	"time"

	"hostelmate-data/internal/domain"
)

// Aggregator 仪表盘聚合器：无状态，每次请求独立计算
type Aggregator struct {
	now func() time.Time
}

// NewAggregator now 为 nil 时使用 time.Now
func NewAggregator(now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{now: now}
}

// Today 聚合使用的"今天"
func (a *Aggregator) Today() domain.Date {
	return domain.DateOf(a.now())
}

// Build 在 raw（owner 数据集）上按 scope 收敛后计算完整 payload。
// 要么返回完整结果，要么由调用方在取数阶段失败，不存在部分结果。
func (a *Aggregator) Build(scope TenantScope, q Query, raw *domain.Dataset) *Payload {
	today := a.Today()

	// 1. 收敛数据范围
	s := ResolveScope(scope, raw)

	// 2. 时点指标 + 窗口指标
	snap := computeSnapshot(s, today)
	period := computePeriod(s, q.Start, q.End, today)

	// 3. 月度趋势与分类统计
	trends := newTrendSeries(s, q.Start, q.End).Collect()
	bd := computeBreakdowns(s, period, today)

	// 4. 假设分析：窗口收入/支出 + 时点占用率
	wi := ProjectWhatIf(WhatIfBase{
		Revenue:       period.Revenue,
		Expenses:      period.Expenses,
		OccupancyRate: snap.OccupancyRate,
	}, q.Sliders)

	return newPayload(snap, period, trends, bd, wi)
}
