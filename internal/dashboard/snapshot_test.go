package dashboard

import (
	"testing"

	"hostelmate-data/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_PendingAmount(t *testing.T) {
	f := newFixture().
		property("o1", "p1", "Alpha").
		unit("o1", "u1", "p1", "Double").
		bed("o1", "b1", "u1", true).
		bed("o1", "b2", "u1", true).
		tenant("o1", "t1", "Indian").
		tenant("o1", "t2", "Nepali").
		booking("o1", "bk1", "t1", "b1", domain.BookingActive, "2024-06-01", "2024-06-30", "1000").
		booking("o1", "bk2", "t2", "b2", domain.BookingActive, "2024-06-01", "2024-06-30", "500").
		payment("o1", "pay1", "bk1", "t1", "2024-06-02", "250").
		payment("o1", "pay2", "bk1", "t1", "2024-06-10", "150").
		// 未来日期的付款不计入
		payment("o1", "pay3", "bk1", "t1", "2024-06-20", "600").
		payment("o1", "pay4", "bk2", "t2", "2024-06-03", "500")

	snap := computeSnapshot(ResolveScope(owner("o1"), &f.ds), d("2024-06-15"))

	assert.Equal(t, "600", snap.PendingAmount.String())
	assert.Equal(t, 1, snap.NumPeoplePendingRent)
	assert.Equal(t, 1, snap.NumFullyPaidBookings)
	assert.Equal(t, 2, snap.ActiveBookingsCount)
	assert.Equal(t, 0, snap.VacantBeds)
	assert.Equal(t, "100", snap.OccupancyRate.String())
}

func TestSnapshot_DueBucketsOverlap(t *testing.T) {
	f := newFixture().
		property("o1", "p1", "Alpha").
		unit("o1", "u1", "p1", "Quad").
		bed("o1", "b1", "u1", true).
		bed("o1", "b2", "u1", true).
		bed("o1", "b3", "u1", true).
		bed("o1", "b4", "u1", true).
		tenant("o1", "t1", "").
		booking("o1", "due1", "t1", "b1", domain.BookingActive, "2024-05-01", "2024-06-16", "100").
		booking("o1", "soon", "t1", "b2", domain.BookingActive, "2024-05-01", "2024-06-20", "100").
		booking("o1", "today", "t1", "b3", domain.BookingActive, "2024-05-01", "2024-06-15", "100").
		booking("o1", "late", "t1", "b4", domain.BookingActive, "2024-05-01", "2024-06-13", "100").
		booking("o1", "yday", "t1", "b4", domain.BookingActive, "2024-05-01", "2024-06-14", "100").
		booking("o1", "done", "t1", "b4", domain.BookingCompleted, "2024-05-01", "2024-06-01", "100")

	snap := computeSnapshot(ResolveScope(owner("o1"), &f.ds), d("2024-06-15"))

	// due ⊂ due_soon；today 当天退房不计入任何桶；昨天退房不算 overdue
	assert.Equal(t, 2, snap.NumDueSoon)
	assert.Equal(t, 1, snap.NumDue)
	assert.Equal(t, 1, snap.NumOverdue)
}

func TestSnapshot_VacantFlooredAtZero(t *testing.T) {
	f := newFixture().
		property("o1", "p1", "Alpha").
		unit("o1", "u1", "p1", "Single").
		bed("o1", "b1", "u1", true).
		bed("o1", "b2", "u1", false).
		tenant("o1", "t1", "").
		booking("o1", "bk1", "t1", "b1", domain.BookingActive, "2024-06-01", "2024-06-30", "100").
		booking("o1", "bk2", "t1", "b2", domain.BookingActive, "2024-06-01", "2024-06-30", "100").
		// 同一床位重叠的协议只算一次
		booking("o1", "bk3", "t1", "b1", domain.BookingActive, "2024-06-10", "2024-06-20", "100")

	snap := computeSnapshot(ResolveScope(owner("o1"), &f.ds), d("2024-06-15"))

	assert.Equal(t, 2, snap.OccupiedBeds)
	assert.Equal(t, 1, snap.ActiveBedsAvailable)
	assert.Equal(t, 0, snap.VacantBeds)
	assert.Equal(t, "100", snap.OccupancyRate.String())
	assert.Equal(t, 3, snap.ActiveBookingsCount)
}

func TestSnapshot_NewTenantsThisMonth(t *testing.T) {
	f := newFixture().
		property("o1", "p1", "Alpha").
		unit("o1", "u1", "p1", "Single").
		bed("o1", "b1", "u1", true).
		tenant("o1", "t1", "").
		tenant("o1", "t2", "").
		tenant("o1", "t3", "").
		booking("o1", "bk1", "t1", "b1", domain.BookingConfirmed, "2024-06-02", "2024-07-30", "100").
		booking("o1", "bk2", "t1", "b1", domain.BookingActive, "2024-06-20", "2024-07-30", "100").
		booking("o1", "bk3", "t2", "b1", domain.BookingActive, "2023-06-02", "2023-07-30", "100").
		booking("o1", "bk4", "t3", "b1", domain.BookingActive, "2024-05-31", "2024-06-30", "100")

	snap := computeSnapshot(ResolveScope(owner("o1"), &f.ds), d("2024-06-15"))
	assert.Equal(t, 1, snap.NewTenantsThisMonth)
}
