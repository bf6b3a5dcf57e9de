package domain

import "time"

// Tenant 住客领域模型（对应 tenants 表）
// 注意：这里的 tenant 指租客，多租户隔离边界是 OwnerID
type Tenant struct {
	TenantID             string    `db:"tenant_id" json:"tenant_id"`
	OwnerID              string    `db:"owner_id" json:"owner_id"`
	TenantName           string    `db:"tenant_name" json:"tenant_name" validate:"required,max=255"`
	ContactNumber        string    `db:"contact_number" json:"contact_number" validate:"required,max=20"`
	Email                string    `db:"email" json:"email,omitempty" validate:"omitempty,email,max=255"`
	Nationality          string    `db:"nationality" json:"nationality" validate:"max=100"`
	IdentificationNumber string    `db:"identification_number" json:"identification_number,omitempty" validate:"max=255"`
	CreatedAt            time.Time `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}
