package domain

// Dataset 仪表盘一次请求所需的七类数据（已按 owner 与过滤条件收敛）
type Dataset struct {
	Properties []*Property
	Units      []*Unit
	Beds       []*Bed
	Tenants    []*Tenant
	Bookings   []*BookingAgreement
	Payments   []*Payment
	Expenses   []*Expense
}
