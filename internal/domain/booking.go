package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// 入住协议状态
const (
	BookingConfirmed = "Confirmed"
	BookingActive    = "Active"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

// BookingAgreement 入住协议（对应 booking_agreements 表）
// 约束：check_out_date >= check_in_date
type BookingAgreement struct {
	BookingID      string          `db:"booking_id" json:"booking_id"`
	OwnerID        string          `db:"owner_id" json:"owner_id"`
	TenantID       string          `db:"tenant_id" json:"tenant_id" validate:"required"`
	BedID          string          `db:"bed_id" json:"bed_id" validate:"required"`
	UnitID         string          `db:"unit_id" json:"unit_id" validate:"required"`
	PropertyID     string          `db:"property_id" json:"property_id" validate:"required"`
	CheckInDate    Date            `db:"check_in_date" json:"check_in_date"`
	CheckOutDate   Date            `db:"check_out_date" json:"check_out_date"`
	RentAmount     decimal.Decimal `db:"rent_amount" json:"rent_amount"`
	DepositAmount  decimal.Decimal `db:"deposit_amount" json:"deposit_amount"`
	BookingStatus  string          `db:"booking_status" json:"booking_status" validate:"required,oneof=Confirmed Active Completed Cancelled"`
	AgreementNotes string          `db:"agreement_notes" json:"agreement_notes"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// IsActive 是否为占床状态
func (b *BookingAgreement) IsActive() bool {
	return b.BookingStatus == BookingActive
}

// IsCommitted Confirmed 或 Active（计入预期收入）
func (b *BookingAgreement) IsCommitted() bool {
	return b.BookingStatus == BookingConfirmed || b.BookingStatus == BookingActive
}

// Spans 协议是否覆盖某一天（闭区间）
func (b *BookingAgreement) Spans(d Date) bool {
	return d.Between(b.CheckInDate, b.CheckOutDate)
}

// Overlaps 协议与 [start, end] 是否有交集
func (b *BookingAgreement) Overlaps(start, end Date) bool {
	return !b.CheckInDate.After(end) && !b.CheckOutDate.Before(start)
}
