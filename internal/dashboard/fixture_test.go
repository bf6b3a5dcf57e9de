package dashboard

import (
	"time"

	"hostelmate-data/internal/domain"

	"github.com/shopspring/decimal"
)

func d(s string) domain.Date {
	v, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(day string) func() time.Time {
	t := d(day).Time.Add(10 * time.Hour)
	return func() time.Time { return t }
}

// fixture 构造测试数据集
type fixture struct {
	ds domain.Dataset
}

func newFixture() *fixture { return &fixture{} }

func (f *fixture) property(owner, id, name string) *fixture {
	f.ds.Properties = append(f.ds.Properties, &domain.Property{PropertyID: id, OwnerID: owner, PropertyName: name})
	return f
}

func (f *fixture) unit(owner, id, propertyID, bedspaceType string) *fixture {
	f.ds.Units = append(f.ds.Units, &domain.Unit{UnitID: id, OwnerID: owner, PropertyID: propertyID, BedspaceType: bedspaceType, UnitNumber: id})
	return f
}

func (f *fixture) bed(owner, id, unitID string, active bool) *fixture {
	f.ds.Beds = append(f.ds.Beds, &domain.Bed{BedID: id, OwnerID: owner, UnitID: unitID, BedNumber: id, IsActive: active})
	return f
}

func (f *fixture) tenant(owner, id, nationality string) *fixture {
	f.ds.Tenants = append(f.ds.Tenants, &domain.Tenant{TenantID: id, OwnerID: owner, TenantName: id, Nationality: nationality})
	return f
}

func (f *fixture) booking(owner, id, tenantID, bedID, status, in, out, rent string) *fixture {
	var unitID, propertyID string
	for _, b := range f.ds.Beds {
		if b.BedID == bedID {
			unitID = b.UnitID
		}
	}
	for _, u := range f.ds.Units {
		if u.UnitID == unitID {
			propertyID = u.PropertyID
		}
	}
	f.ds.Bookings = append(f.ds.Bookings, &domain.BookingAgreement{
		BookingID:     id,
		OwnerID:       owner,
		TenantID:      tenantID,
		BedID:         bedID,
		UnitID:        unitID,
		PropertyID:    propertyID,
		CheckInDate:   d(in),
		CheckOutDate:  d(out),
		RentAmount:    dec(rent),
		DepositAmount: decimal.Zero,
		BookingStatus: status,
	})
	return f
}

func (f *fixture) payment(owner, id, bookingID, tenantID, date, amount string) *fixture {
	f.ds.Payments = append(f.ds.Payments, &domain.Payment{
		PaymentID:     id,
		OwnerID:       owner,
		BookingID:     bookingID,
		TenantID:      tenantID,
		PaymentDate:   d(date),
		AmountPaid:    dec(amount),
		PaymentMethod: domain.DefaultPaymentMethod,
	})
	return f
}

func (f *fixture) expense(owner, id, propertyID, date, category, amount string) *fixture {
	f.ds.Expenses = append(f.ds.Expenses, &domain.Expense{
		ExpenseID:   id,
		OwnerID:     owner,
		PropertyID:  propertyID,
		ExpenseDate: d(date),
		Category:    category,
		Amount:      dec(amount),
	})
	return f
}

// tripleScenario 一个物业、一个 Triple 单元、3 张床、1 条 Active 协议、两笔 150 的付款
func tripleScenario() *fixture {
	return newFixture().
		property("o1", "p1", "Marina Heights").
		unit("o1", "u1", "p1", "Triple").
		bed("o1", "b1", "u1", true).
		bed("o1", "b2", "u1", true).
		bed("o1", "b3", "u1", true).
		tenant("o1", "t1", "Indian").
		booking("o1", "bk1", "t1", "b1", domain.BookingActive, "2024-01-01", "2024-12-31", "300").
		payment("o1", "pay1", "bk1", "t1", "2024-02-01", "150").
		payment("o1", "pay2", "bk1", "t1", "2024-03-01", "150")
}

func owner(id string) TenantScope {
	return TenantScope{Caller: domain.Caller{OwnerID: id}}
}
