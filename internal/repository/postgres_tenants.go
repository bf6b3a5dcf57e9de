package repository

import (
	"database/sql"

	"hostelmate-data/internal/domain"
)

// NewPostgresTenantsStore tenants 表（email / identification_number 可为 NULL）
func NewPostgresTenantsStore(db *sql.DB) *PostgresStore[domain.Tenant] {
	return newPostgresStore(db, entityTable[domain.Tenant]{
		name:  "tenants",
		alias: "t",
		id:    "tenant_id",
		owner: "owner_id",
		selects: []string{
			"t.tenant_id::text", "t.owner_id::text", "t.tenant_name", "t.contact_number",
			"t.email", "t.nationality", "t.identification_number",
			"t.created_at", "t.updated_at",
		},
		writes:  []string{"tenant_name", "contact_number", "email", "nationality", "identification_number"},
		orderBy: "t.tenant_name",
		scan: func(row rowScanner) (*domain.Tenant, error) {
			var t domain.Tenant
			var email, identification sql.NullString
			if err := row.Scan(&t.TenantID, &t.OwnerID, &t.TenantName, &t.ContactNumber,
				&email, &t.Nationality, &identification,
				&t.CreatedAt, &t.UpdatedAt); err != nil {
				return nil, err
			}
			t.Email = email.String
			t.IdentificationNumber = identification.String
			return &t, nil
		},
		keys: func(t *domain.Tenant) (string, string) { return t.TenantID, t.OwnerID },
		values: func(t *domain.Tenant) []any {
			return []any{t.TenantName, t.ContactNumber, nullString(t.Email), t.Nationality, nullString(t.IdentificationNumber)}
		},
	})
}
