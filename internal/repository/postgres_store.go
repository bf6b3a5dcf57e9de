package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hostelmate-data/internal/domain"
)

// rowScanner *sql.Row 与 *sql.Rows 的公共部分
type rowScanner interface {
	Scan(dest ...any) error
}

// entityTable 描述一张按 owner 隔离的实体表
type entityTable[T any] struct {
	name    string
	alias   string   // SELECT 时的表别名
	id      string   // 主键列
	owner   string   // owner 列；空字符串表示全局表（不按 owner 隔离）
	selects []string // SELECT 表达式，顺序与 scan 一致
	writes  []string // 可写列（不含 id/owner），顺序与 values 一致
	orderBy string

	scan   func(rowScanner) (*T, error)
	keys   func(*T) (id, owner string)
	values func(*T) []any

	// afterWrite 在同一事务内维护关联表（如 expense_units）
	afterWrite func(ctx context.Context, tx *sql.Tx, v *T) error
}

// PostgresStore Store 的 Postgres 实现
type PostgresStore[T any] struct {
	db *sql.DB
	t  entityTable[T]
}

func newPostgresStore[T any](db *sql.DB, t entityTable[T]) *PostgresStore[T] {
	return &PostgresStore[T]{db: db, t: t}
}

func (s *PostgresStore[T]) selectSQL() string {
	return "SELECT " + strings.Join(s.t.selects, ", ") + " FROM " + s.t.name + " " + s.t.alias
}

// ownerFilter 非特权调用方附加 owner 条件；返回的 where 片段以 " AND " 拼接
func (s *PostgresStore[T]) ownerFilter(caller domain.Caller, argIdx int) (string, []any) {
	if s.t.owner == "" || caller.Privileged {
		return "", nil
	}
	return fmt.Sprintf("%s.%s = $%d", s.t.alias, s.t.owner, argIdx), []any{caller.OwnerID}
}

func (s *PostgresStore[T]) List(ctx context.Context, caller domain.Caller) ([]*T, error) {
	q := s.selectSQL()
	where, args := s.ownerFilter(caller, 1)
	if where != "" {
		q += " WHERE " + where
	}
	if s.t.orderBy != "" {
		q += " ORDER BY " + s.t.orderBy
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.t.name, err)
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v, err := s.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.t.name, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *PostgresStore[T]) Get(ctx context.Context, caller domain.Caller, id string) (*T, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	q := s.selectSQL() + fmt.Sprintf(" WHERE %s.%s::text = $1", s.t.alias, s.t.id)
	args := []any{id}
	if where, extra := s.ownerFilter(caller, 2); where != "" {
		q += " AND " + where
		args = append(args, extra...)
	}

	v, err := s.t.scan(s.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", s.t.name, err)
	}
	return v, nil
}

func (s *PostgresStore[T]) Create(ctx context.Context, v *T) error {
	id, owner := s.t.keys(v)
	cols := []string{s.t.id}
	args := []any{id}
	if s.t.owner != "" {
		cols = append(cols, s.t.owner)
		args = append(args, owner)
	}
	cols = append(cols, s.t.writes...)
	args = append(args, s.t.values(v)...)

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	q := "INSERT INTO " + s.t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"

	return s.write(ctx, v, func(exec execer) error {
		if _, err := exec.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert %s: %w", s.t.name, err)
		}
		return nil
	})
}

func (s *PostgresStore[T]) Update(ctx context.Context, caller domain.Caller, v *T) error {
	id, _ := s.t.keys(v)
	args := []any{id}
	sets := make([]string, 0, len(s.t.writes)+1)
	for i, col := range s.t.writes {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+2))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, s.t.values(v)...)

	q := "UPDATE " + s.t.name + " " + s.t.alias + " SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE %s.%s::text = $1", s.t.alias, s.t.id)
	if where, extra := s.ownerFilter(caller, len(args)+1); where != "" {
		q += " AND " + where
		args = append(args, extra...)
	}

	return s.write(ctx, v, func(exec execer) error {
		res, err := exec.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("update %s: %w", s.t.name, err)
		}
		return requireAffected(res)
	})
}

func (s *PostgresStore[T]) Delete(ctx context.Context, caller domain.Caller, id string) error {
	q := "DELETE FROM " + s.t.name + " " + s.t.alias + fmt.Sprintf(" WHERE %s.%s::text = $1", s.t.alias, s.t.id)
	args := []any{id}
	if where, extra := s.ownerFilter(caller, 2); where != "" {
		q += " AND " + where
		args = append(args, extra...)
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.t.name, err)
	}
	return requireAffected(res)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// write 无关联表时直接执行；有 afterWrite 时主表与关联表在同一事务内提交
func (s *PostgresStore[T]) write(ctx context.Context, v *T, fn func(execer) error) error {
	if s.t.afterWrite == nil {
		return fn(s.db)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := s.t.afterWrite(ctx, tx, v); err != nil {
		return err
	}
	return tx.Commit()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullString 空字符串写为 NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
