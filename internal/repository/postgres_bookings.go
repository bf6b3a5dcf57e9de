package repository

import (
	"database/sql"

	"hostelmate-data/internal/domain"
)

// NewPostgresBookingsStore booking_agreements 表
func NewPostgresBookingsStore(db *sql.DB) *PostgresStore[domain.BookingAgreement] {
	return newPostgresStore(db, entityTable[domain.BookingAgreement]{
		name:  "booking_agreements",
		alias: "ba",
		id:    "booking_id",
		owner: "owner_id",
		selects: []string{
			"ba.booking_id::text", "ba.owner_id::text", "ba.tenant_id::text", "ba.bed_id::text",
			"ba.unit_id::text", "ba.property_id::text", "ba.check_in_date", "ba.check_out_date",
			"ba.rent_amount", "ba.deposit_amount", "ba.booking_status", "ba.agreement_notes",
			"ba.created_at", "ba.updated_at",
		},
		writes: []string{
			"tenant_id", "bed_id", "unit_id", "property_id", "check_in_date", "check_out_date",
			"rent_amount", "deposit_amount", "booking_status", "agreement_notes",
		},
		orderBy: "ba.check_in_date DESC, ba.booking_id",
		scan: func(row rowScanner) (*domain.BookingAgreement, error) {
			var b domain.BookingAgreement
			err := row.Scan(&b.BookingID, &b.OwnerID, &b.TenantID, &b.BedID,
				&b.UnitID, &b.PropertyID, &b.CheckInDate, &b.CheckOutDate,
				&b.RentAmount, &b.DepositAmount, &b.BookingStatus, &b.AgreementNotes,
				&b.CreatedAt, &b.UpdatedAt)
			return &b, err
		},
		keys: func(b *domain.BookingAgreement) (string, string) { return b.BookingID, b.OwnerID },
		values: func(b *domain.BookingAgreement) []any {
			return []any{
				b.TenantID, b.BedID, b.UnitID, b.PropertyID, b.CheckInDate, b.CheckOutDate,
				b.RentAmount, b.DepositAmount, b.BookingStatus, b.AgreementNotes,
			}
		},
	})
}

// NewPostgresPaymentsStore payments 表（booking_id 可为 NULL）
func NewPostgresPaymentsStore(db *sql.DB) *PostgresStore[domain.Payment] {
	return newPostgresStore(db, entityTable[domain.Payment]{
		name:  "payments",
		alias: "pm",
		id:    "payment_id",
		owner: "owner_id",
		selects: []string{
			"pm.payment_id::text", "pm.owner_id::text", "pm.booking_id::text", "pm.tenant_id::text",
			"pm.payment_date", "pm.amount_paid", "pm.payment_method", "pm.payment_notes",
			"pm.created_at", "pm.updated_at",
		},
		writes:  []string{"booking_id", "tenant_id", "payment_date", "amount_paid", "payment_method", "payment_notes"},
		orderBy: "pm.payment_date DESC, pm.payment_id",
		scan: func(row rowScanner) (*domain.Payment, error) {
			var p domain.Payment
			var bookingID sql.NullString
			if err := row.Scan(&p.PaymentID, &p.OwnerID, &bookingID, &p.TenantID,
				&p.PaymentDate, &p.AmountPaid, &p.PaymentMethod, &p.PaymentNotes,
				&p.CreatedAt, &p.UpdatedAt); err != nil {
				return nil, err
			}
			p.BookingID = bookingID.String
			return &p, nil
		},
		keys: func(p *domain.Payment) (string, string) { return p.PaymentID, p.OwnerID },
		values: func(p *domain.Payment) []any {
			return []any{nullString(p.BookingID), p.TenantID, p.PaymentDate, p.AmountPaid, p.PaymentMethod, p.PaymentNotes}
		},
	})
}
