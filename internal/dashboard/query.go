package dashboard

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

// 仪表盘查询参数名
const (
	ParamStartDate              = "start_date"
	ParamEndDate                = "end_date"
	ParamPropertyID             = "property_id"
	ParamBedspaceType           = "bedspace_type"
	ParamNationality            = "nationality"
	ParamExpenseCategory        = "expense_category"
	ParamExpenseIncreasePercent = "expense_increase_percent"
	ParamOccupancyImpactPercent = "occupancy_impact_percent"
	ParamPriceChangePercent     = "price_change_percent"
)

// defaultWindowMonths 默认窗口：含当月在内的 12 个月
const defaultWindowMonths = 12

const msgInvalidDate = "Invalid date format. Use YYYY-MM-DD."

// Filters 维度过滤（空字符串表示不过滤，多个条件 AND 组合）
type Filters struct {
	PropertyID      string `json:"property_id,omitempty"`
	BedspaceType    string `json:"bedspace_type,omitempty"`
	Nationality     string `json:"nationality,omitempty"`
	ExpenseCategory string `json:"expense_category,omitempty"`
}

// Sliders what-if 百分比（可为负数，不做范围校验）
type Sliders struct {
	ExpenseIncreasePercent decimal.Decimal
	OccupancyImpactPercent decimal.Decimal
	PriceChangePercent     decimal.Decimal
}

// Query 解析后的仪表盘请求
type Query struct {
	Filters Filters
	// Start 总是当月第一天；End 为闭区间右端
	Start   domain.Date
	End     domain.Date
	Sliders Sliders
}

// ParseQuery 解析并校验查询参数；任何格式错误都返回 ErrValidation
func ParseQuery(values url.Values, today domain.Date) (Query, error) {
	q := Query{
		Filters: Filters{
			PropertyID:      strings.TrimSpace(values.Get(ParamPropertyID)),
			BedspaceType:    strings.TrimSpace(values.Get(ParamBedspaceType)),
			Nationality:     strings.TrimSpace(values.Get(ParamNationality)),
			ExpenseCategory: strings.TrimSpace(values.Get(ParamExpenseCategory)),
		},
	}

	// 1. 日期窗口
	start := today.MonthStart().AddMonths(-(defaultWindowMonths - 1))
	end := today
	if s := values.Get(ParamStartDate); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return Query{}, invalid(ParamStartDate, msgInvalidDate)
		}
		start = d
	}
	if s := values.Get(ParamEndDate); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			return Query{}, invalid(ParamEndDate, msgInvalidDate)
		}
		end = d
	}
	q.Start = start.MonthStart()
	q.End = end

	// 2. what-if 滑块
	var err error
	if q.Sliders.ExpenseIncreasePercent, err = parsePercent(values, ParamExpenseIncreasePercent); err != nil {
		return Query{}, err
	}
	if q.Sliders.OccupancyImpactPercent, err = parsePercent(values, ParamOccupancyImpactPercent); err != nil {
		return Query{}, err
	}
	if q.Sliders.PriceChangePercent, err = parsePercent(values, ParamPriceChangePercent); err != nil {
		return Query{}, err
	}
	return q, nil
}

// 百分比取值不限范围，只限制位数与指数，避免超大指数在后续运算中展开
const (
	maxPercentExponent = 64
	maxPercentDigits   = 64
)

func parsePercent(values url.Values, key string) (decimal.Decimal, error) {
	s := strings.TrimSpace(values.Get(key))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(key, fmt.Sprintf("Invalid decimal value for %s.", key))
	}
	if exp := d.Exponent(); exp > maxPercentExponent || exp < -maxPercentExponent || d.NumDigits() > maxPercentDigits {
		return decimal.Zero, invalid(key, fmt.Sprintf("Value for %s is out of range.", key))
	}
	return d, nil
}

// CanonicalKey 规范化后的完整参数集合（按 key、value 排序），用作缓存 key 的一部分
func CanonicalKey(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		vs := append([]string(nil), values[k]...)
		sort.Strings(vs)
		for _, v := range vs {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
