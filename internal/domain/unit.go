package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit 单元（房间）领域模型（对应 units 表）
// BedspaceType 用于分段统计，例如 "Triple"、"Dormitory"
type Unit struct {
	UnitID       string          `db:"unit_id" json:"unit_id"`
	PropertyID   string          `db:"property_id" json:"property_id" validate:"required"`
	OwnerID      string          `db:"owner_id" json:"owner_id"`
	UnitNumber   string          `db:"unit_number" json:"unit_number" validate:"required,max=50"`
	BedspaceType string          `db:"bedspace_type" json:"bedspace_type" validate:"required,max=100"`
	RentPerBed   decimal.Decimal `db:"rent_per_bed" json:"rent_per_bed"`
	Description  string          `db:"description" json:"description"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
