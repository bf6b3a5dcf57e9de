package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense 支出记录（对应 expenses 表，units 多对多关系存于 expense_units）
type Expense struct {
	ExpenseID     string          `db:"expense_id" json:"expense_id"`
	OwnerID       string          `db:"owner_id" json:"owner_id"`
	PropertyID    string          `db:"property_id" json:"property_id,omitempty"`
	UnitIDs       []string        `db:"-" json:"unit_ids"`
	ExpenseDate   Date            `db:"expense_date" json:"expense_date"`
	Category      string          `db:"category" json:"category" validate:"required,max=255"`
	SubCategory   string          `db:"sub_category" json:"sub_category" validate:"max=255"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentMethod string          `db:"payment_method" json:"payment_method" validate:"max=50"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}
