package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hostelmate-data/internal/domain"

	"github.com/lib/pq"
)

// NewPostgresExpensesStore expenses 表；units 多对多关系存于 expense_units(expense_id, unit_id)
func NewPostgresExpensesStore(db *sql.DB) *PostgresStore[domain.Expense] {
	return newPostgresStore(db, entityTable[domain.Expense]{
		name:  "expenses",
		alias: "e",
		id:    "expense_id",
		owner: "owner_id",
		selects: []string{
			"e.expense_id::text", "e.owner_id::text", "e.property_id::text",
			"ARRAY(SELECT eu.unit_id::text FROM expense_units eu WHERE eu.expense_id = e.expense_id ORDER BY eu.unit_id)",
			"e.expense_date", "e.category", "e.sub_category", "e.description", "e.amount", "e.payment_method",
			"e.created_at", "e.updated_at",
		},
		writes:  []string{"property_id", "expense_date", "category", "sub_category", "description", "amount", "payment_method"},
		orderBy: "e.expense_date DESC, e.expense_id",
		scan: func(row rowScanner) (*domain.Expense, error) {
			var e domain.Expense
			var propertyID sql.NullString
			unitIDs := []string{}
			if err := row.Scan(&e.ExpenseID, &e.OwnerID, &propertyID, pq.Array(&unitIDs),
				&e.ExpenseDate, &e.Category, &e.SubCategory, &e.Description, &e.Amount, &e.PaymentMethod,
				&e.CreatedAt, &e.UpdatedAt); err != nil {
				return nil, err
			}
			e.PropertyID = propertyID.String
			e.UnitIDs = unitIDs
			return &e, nil
		},
		keys: func(e *domain.Expense) (string, string) { return e.ExpenseID, e.OwnerID },
		values: func(e *domain.Expense) []any {
			return []any{nullString(e.PropertyID), e.ExpenseDate, e.Category, e.SubCategory, e.Description, e.Amount, e.PaymentMethod}
		},
		afterWrite: replaceExpenseUnits,
	})
}

// replaceExpenseUnits 以实体上的 UnitIDs 覆盖关联表
func replaceExpenseUnits(ctx context.Context, tx *sql.Tx, e *domain.Expense) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_units WHERE expense_id = $1`, e.ExpenseID); err != nil {
		return fmt.Errorf("clear expense_units: %w", err)
	}
	if len(e.UnitIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO expense_units (expense_id, unit_id) SELECT $1, unnest($2::uuid[])`,
		e.ExpenseID, pq.Array(e.UnitIDs))
	if err != nil {
		return fmt.Errorf("insert expense_units: %w", err)
	}
	return nil
}
