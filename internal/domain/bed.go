package domain

import "time"

// Bed 床位领域模型（对应 beds 表）
type Bed struct {
	BedID          string    `db:"bed_id" json:"bed_id"`
	UnitID         string    `db:"unit_id" json:"unit_id" validate:"required"`
	OwnerID        string    `db:"owner_id" json:"owner_id"`
	BedNumber      string    `db:"bed_number" json:"bed_number" validate:"required,max=20"`
	LocationInUnit string    `db:"location_in_unit" json:"location_in_unit" validate:"required,max=100"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
