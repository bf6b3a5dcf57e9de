package repository

import (
	"context"
	"fmt"

	"hostelmate-data/internal/domain"
)

// DatasetLoader 基于各实体 Store 组装仪表盘数据集。
// 七次读取不在同一事务内，允许子查询之间存在读偏差。
type DatasetLoader struct {
	Properties Store[domain.Property]
	Units      Store[domain.Unit]
	Beds       Store[domain.Bed]
	Tenants    Store[domain.Tenant]
	Bookings   Store[domain.BookingAgreement]
	Payments   Store[domain.Payment]
	Expenses   Store[domain.Expense]
}

func (l *DatasetLoader) LoadDataset(ctx context.Context, caller domain.Caller) (*domain.Dataset, error) {
	var (
		ds  domain.Dataset
		err error
	)
	if ds.Properties, err = l.Properties.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	if ds.Units, err = l.Units.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	if ds.Beds, err = l.Beds.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load beds: %w", err)
	}
	if ds.Tenants, err = l.Tenants.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load tenants: %w", err)
	}
	if ds.Bookings, err = l.Bookings.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	if ds.Payments, err = l.Payments.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	if ds.Expenses, err = l.Expenses.List(ctx, caller); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return &ds, nil
}

func newDatasetLoader(r *Repositories) *DatasetLoader {
	return &DatasetLoader{
		Properties: r.Properties,
		Units:      r.Units,
		Beds:       r.Beds,
		Tenants:    r.Tenants,
		Bookings:   r.Bookings,
		Payments:   r.Payments,
		Expenses:   r.Expenses,
	}
}
