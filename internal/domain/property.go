package domain

import "time"

// Property 物业领域模型（对应 properties 表）
// (owner_id, property_name) 唯一
type Property struct {
	PropertyID   string    `db:"property_id" json:"property_id"`
	OwnerID      string    `db:"owner_id" json:"owner_id"`
	PropertyName string    `db:"property_name" json:"property_name" validate:"required,max=255"`
	Address      string    `db:"address" json:"address"`
	City         string    `db:"city" json:"city" validate:"max=100"`
	Country      string    `db:"country" json:"country" validate:"max=100"`
	Description  string    `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
