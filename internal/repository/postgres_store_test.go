package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"hostelmate-data/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Repositories) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repos := NewPostgresRepositories(db)
	return db, mock, repos
}

var propertyColumns = []string{
	"property_id", "owner_id", "property_name", "address", "city", "country", "description", "created_at", "updated_at",
}

func TestPropertiesList_ScopedToOwner(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(propertyColumns).
		AddRow("p-1", "owner-1", "Marina Heights", "Street 1", "Dubai", "UAE", "", now, now).
		AddRow("p-2", "owner-1", "Palm Residence", "Street 2", "Dubai", "UAE", "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM properties p WHERE p.owner_id = $1 ORDER BY p.property_name`)).
		WithArgs("owner-1").
		WillReturnRows(rows)

	list, err := repos.Properties.List(context.Background(), domain.Caller{OwnerID: "owner-1"})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-1", list[0].PropertyID)
	assert.Equal(t, "Palm Residence", list[1].PropertyName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesList_PrivilegedSeesAll(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`FROM properties p ORDER BY`).
		WithArgs().
		WillReturnRows(sqlmock.NewRows(propertyColumns))

	list, err := repos.Properties.List(context.Background(), domain.Caller{OwnerID: "admin", Privileged: true})

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesGet_NotFound(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.property_id::text = $1 AND p.owner_id = $2`)).
		WithArgs("p-9", "owner-1").
		WillReturnError(sql.ErrNoRows)

	p, err := repos.Properties.Get(context.Background(), domain.Caller{OwnerID: "owner-1"}, "p-9")

	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesGet_EmptyID(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	_, err := repos.Properties.Get(context.Background(), domain.Caller{OwnerID: "owner-1"}, "")

	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertiesByID_NonUUIDIsNotFound(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()
	caller := domain.Caller{OwnerID: "owner-1"}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE p.property_id::text = $1 AND p.owner_id = $2`)).
		WithArgs("abc", "owner-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM properties p WHERE p.property_id::text = $1 AND p.owner_id = $2`)).
		WithArgs("abc", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repos.Properties.Get(context.Background(), caller, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repos.Properties.Delete(context.Background(), caller, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitsCreate_InsertsOwnerAndColumns(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	u := &domain.Unit{
		UnitID:       "u-1",
		PropertyID:   "p-1",
		OwnerID:      "owner-1",
		UnitNumber:   "101",
		BedspaceType: "Double",
		RentPerBed:   decimal.RequireFromString("1200"),
	}

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO units (unit_id, owner_id, property_id, unit_number, bedspace_type, rent_per_bed, description) VALUES ($1, $2, $3, $4, $5, $6, $7)`)).
		WithArgs("u-1", "owner-1", "p-1", "101", "Double", decimal.RequireFromString("1200"), "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Units.Create(context.Background(), u)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBedsUpdate_NoRowsIsNotFound(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	b := &domain.Bed{BedID: "b-1", UnitID: "u-1", OwnerID: "owner-2", BedNumber: "A", IsActive: true}

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE beds b SET unit_id = $2, bed_number = $3, location_in_unit = $4, is_active = $5, updated_at = NOW() WHERE b.bed_id::text = $1 AND b.owner_id = $6`)).
		WithArgs("b-1", "u-1", "A", "", true, "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repos.Beds.Update(context.Background(), domain.Caller{OwnerID: "owner-1"}, b)

	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantsDelete_Success(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tenants t WHERE t.tenant_id::text = $1 AND t.owner_id = $2`)).
		WithArgs("t-1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repos.Tenants.Delete(context.Background(), domain.Caller{OwnerID: "owner-1"}, "t-1")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantsList_NullableColumns(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"tenant_id", "owner_id", "tenant_name", "contact_number", "email", "nationality", "identification_number",
		"created_at", "updated_at",
	}).AddRow("t-1", "owner-1", "Ravi", "+971500000000", nil, "India", nil, now, now)

	mock.ExpectQuery(`FROM tenants t WHERE`).
		WithArgs("owner-1").
		WillReturnRows(rows)

	list, err := repos.Tenants.List(context.Background(), domain.Caller{OwnerID: "owner-1"})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].Email)
	assert.Equal(t, "", list[0].IdentificationNumber)
	assert.Equal(t, "India", list[0].Nationality)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentsList_NullBooking(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"payment_id", "owner_id", "booking_id", "tenant_id", "payment_date", "amount_paid", "payment_method",
		"payment_notes", "created_at", "updated_at",
	}).
		AddRow("pay-1", "owner-1", "bk-1", "t-1", "2026-10-01", "600.00", "Cash", "", now, now).
		AddRow("pay-2", "owner-1", nil, "t-1", "2026-09-15", "100.50", "Bank", "deposit", now, now)

	mock.ExpectQuery(`FROM payments pm WHERE pm.owner_id`).
		WithArgs("owner-1").
		WillReturnRows(rows)

	list, err := repos.Payments.List(context.Background(), domain.Caller{OwnerID: "owner-1"})

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bk-1", list[0].BookingID)
	assert.Equal(t, domain.NewDate(2026, time.October, 1), list[0].PaymentDate)
	assert.True(t, decimal.RequireFromString("600").Equal(list[0].AmountPaid))
	assert.Equal(t, "", list[1].BookingID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpensesCreate_WritesUnitsInTransaction(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	e := &domain.Expense{
		ExpenseID:   "e-1",
		OwnerID:     "owner-1",
		PropertyID:  "p-1",
		UnitIDs:     []string{"u-1", "u-2"},
		ExpenseDate: domain.NewDate(2026, time.October, 3),
		Category:    "Utilities",
		Amount:      decimal.RequireFromString("250"),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO expenses`).
		WithArgs("e-1", "owner-1", "p-1", domain.NewDate(2026, time.October, 3), "Utilities", "", "", decimal.RequireFromString("250"), "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM expense_units`).
		WithArgs("e-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO expense_units`).
		WithArgs("e-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repos.Expenses.Create(context.Background(), e)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpensesUpdate_RollbackOnUnitFailure(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	e := &domain.Expense{
		ExpenseID:   "e-1",
		OwnerID:     "owner-1",
		UnitIDs:     []string{"u-1"},
		ExpenseDate: domain.NewDate(2026, time.October, 3),
		Category:    "Utilities",
		Amount:      decimal.RequireFromString("250"),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE expenses e SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM expense_units`).
		WithArgs("e-1").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repos.Expenses.Update(context.Background(), domain.Caller{OwnerID: "owner-1"}, e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear expense_units")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpensesList_ScansUnitArray(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"expense_id", "owner_id", "property_id", "unit_ids", "expense_date", "category", "sub_category",
		"description", "amount", "payment_method", "created_at", "updated_at",
	}).AddRow("e-1", "owner-1", nil, "{u-1,u-2}", "2026-10-03", "Rent", "", "", "5000", "Bank", now, now)

	mock.ExpectQuery(`FROM expenses e WHERE e.owner_id`).
		WithArgs("owner-1").
		WillReturnRows(rows)

	list, err := repos.Expenses.List(context.Background(), domain.Caller{OwnerID: "owner-1"})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "", list[0].PropertyID)
	assert.Equal(t, []string{"u-1", "u-2"}, list[0].UnitIDs)
	assert.Equal(t, "Rent", list[0].Category)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlansList_IgnoresOwner(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"plan_id", "plan_name", "description", "price", "duration_months", "features", "created_at", "updated_at",
	}).AddRow("plan-1", "Starter", "", "49.00", 1, `["dashboard","export"]`, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM subscription_plans sp ORDER BY sp.price, sp.plan_name`)).
		WithArgs().
		WillReturnRows(rows)

	list, err := repos.Plans.List(context.Background(), domain.Caller{OwnerID: "owner-1"})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"dashboard", "export"}, list[0].Features)
	assert.Equal(t, 1, list[0].DurationMonths)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasActiveSubscription(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	today := domain.NewDate(2026, time.October, 15)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("owner-1", today).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repos.Subscriptions.HasActiveSubscription(context.Background(), "owner-1", today)

	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateExpired(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	today := domain.NewDate(2026, time.October, 15)
	mock.ExpectExec(`UPDATE subscriptions\s+SET is_active = FALSE`).
		WithArgs(today).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repos.Subscriptions.DeactivateExpired(context.Background(), today)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDataset_WrapsError(t *testing.T) {
	db, mock, repos := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`FROM properties p`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(propertyColumns))
	mock.ExpectQuery(`FROM units u`).
		WithArgs("owner-1").
		WillReturnError(errors.New("timeout"))

	ds, err := repos.Dataset.LoadDataset(context.Background(), domain.Caller{OwnerID: "owner-1"})

	assert.Nil(t, ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load units")

	require.NoError(t, mock.ExpectationsWereMet())
}
