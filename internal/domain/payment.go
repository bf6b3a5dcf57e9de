package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod 未指定时的付款方式
const DefaultPaymentMethod = "Cash"

// Payment 付款记录（对应 payments 表）
// BookingID 为空表示未关联协议（协议删除后置空）
type Payment struct {
	PaymentID     string          `db:"payment_id" json:"payment_id"`
	OwnerID       string          `db:"owner_id" json:"owner_id"`
	BookingID     string          `db:"booking_id" json:"booking_id,omitempty"`
	TenantID      string          `db:"tenant_id" json:"tenant_id" validate:"required"`
	PaymentDate   Date            `db:"payment_date" json:"payment_date"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	PaymentMethod string          `db:"payment_method" json:"payment_method" validate:"max=50"`
	PaymentNotes  string          `db:"payment_notes" json:"payment_notes"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
