package dashboard

import (
	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

// monthsInPeriod 闭区间内跨越的自然月数（至少为 1）
func monthsInPeriod(start, end domain.Date) int {
	n := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if n < 1 {
		return 1
	}
	return n
}

// sumPayments 付款日期落在 [start, end] 内的金额合计
func sumPayments(payments []*domain.Payment, start, end domain.Date, pred func(*domain.Payment) bool) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if !p.PaymentDate.Between(start, end) {
			continue
		}
		if pred != nil && !pred(p) {
			continue
		}
		total = total.Add(p.AmountPaid)
	}
	return total
}

// sumExpenses 支出日期落在 [start, end] 内的金额合计
func sumExpenses(expenses []*domain.Expense, start, end domain.Date, pred func(*domain.Expense) bool) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if !e.ExpenseDate.Between(start, end) {
			continue
		}
		if pred != nil && !pred(e) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total
}

// sumRent 满足 pred 的协议租金合计
func sumRent(bookings []*domain.BookingAgreement, pred func(*domain.BookingAgreement) bool) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bookings {
		if pred(b) {
			total = total.Add(b.RentAmount)
		}
	}
	return total
}
