package repository

import (
	"database/sql"

	"hostelmate-data/internal/domain"
)

// NewPostgresPropertiesStore properties 表
func NewPostgresPropertiesStore(db *sql.DB) *PostgresStore[domain.Property] {
	return newPostgresStore(db, entityTable[domain.Property]{
		name:  "properties",
		alias: "p",
		id:    "property_id",
		owner: "owner_id",
		selects: []string{
			"p.property_id::text", "p.owner_id::text", "p.property_name",
			"p.address", "p.city", "p.country", "p.description",
			"p.created_at", "p.updated_at",
		},
		writes:  []string{"property_name", "address", "city", "country", "description"},
		orderBy: "p.property_name",
		scan: func(row rowScanner) (*domain.Property, error) {
			var p domain.Property
			err := row.Scan(&p.PropertyID, &p.OwnerID, &p.PropertyName,
				&p.Address, &p.City, &p.Country, &p.Description,
				&p.CreatedAt, &p.UpdatedAt)
			return &p, err
		},
		keys: func(p *domain.Property) (string, string) { return p.PropertyID, p.OwnerID },
		values: func(p *domain.Property) []any {
			return []any{p.PropertyName, p.Address, p.City, p.Country, p.Description}
		},
	})
}

// NewPostgresUnitsStore units 表
func NewPostgresUnitsStore(db *sql.DB) *PostgresStore[domain.Unit] {
	return newPostgresStore(db, entityTable[domain.Unit]{
		name:  "units",
		alias: "u",
		id:    "unit_id",
		owner: "owner_id",
		selects: []string{
			"u.unit_id::text", "u.property_id::text", "u.owner_id::text",
			"u.unit_number", "u.bedspace_type", "u.rent_per_bed", "u.description",
			"u.created_at", "u.updated_at",
		},
		writes:  []string{"property_id", "unit_number", "bedspace_type", "rent_per_bed", "description"},
		orderBy: "u.property_id, u.unit_number",
		scan: func(row rowScanner) (*domain.Unit, error) {
			var u domain.Unit
			err := row.Scan(&u.UnitID, &u.PropertyID, &u.OwnerID,
				&u.UnitNumber, &u.BedspaceType, &u.RentPerBed, &u.Description,
				&u.CreatedAt, &u.UpdatedAt)
			return &u, err
		},
		keys: func(u *domain.Unit) (string, string) { return u.UnitID, u.OwnerID },
		values: func(u *domain.Unit) []any {
			return []any{u.PropertyID, u.UnitNumber, u.BedspaceType, u.RentPerBed, u.Description}
		},
	})
}

// NewPostgresBedsStore beds 表
func NewPostgresBedsStore(db *sql.DB) *PostgresStore[domain.Bed] {
	return newPostgresStore(db, entityTable[domain.Bed]{
		name:  "beds",
		alias: "b",
		id:    "bed_id",
		owner: "owner_id",
		selects: []string{
			"b.bed_id::text", "b.unit_id::text", "b.owner_id::text",
			"b.bed_number", "b.location_in_unit", "b.is_active",
			"b.created_at", "b.updated_at",
		},
		writes:  []string{"unit_id", "bed_number", "location_in_unit", "is_active"},
		orderBy: "b.unit_id, b.bed_number",
		scan: func(row rowScanner) (*domain.Bed, error) {
			var b domain.Bed
			err := row.Scan(&b.BedID, &b.UnitID, &b.OwnerID,
				&b.BedNumber, &b.LocationInUnit, &b.IsActive,
				&b.CreatedAt, &b.UpdatedAt)
			return &b, err
		},
		keys: func(b *domain.Bed) (string, string) { return b.BedID, b.OwnerID },
		values: func(b *domain.Bed) []any {
			return []any{b.UnitID, b.BedNumber, b.LocationInUnit, b.IsActive}
		},
	})
}
