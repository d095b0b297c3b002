package postgres

import (
	"context"
	"io"

	"chartdash/db/sql"
)

type mockDatabase struct {
	SetupFunc     func(ctx context.Context, files []io.Reader) error
	QueryFunc     func(ctx context.Context, q sql.Query, dest ...interface{}) error
	QueryRowsFunc func(ctx context.Context, q sql.Query, scan func(row sql.Scanner) error) error
	ExecFunc      func(ctx context.Context, queries ...sql.Query) error
}

func (m mockDatabase) Setup(ctx context.Context, files []io.Reader) error {
	return m.SetupFunc(ctx, files)
}

func (m mockDatabase) Query(ctx context.Context, q sql.Query, dest ...interface{}) error {
	return m.QueryFunc(ctx, q, dest...)
}

func (m mockDatabase) QueryRows(ctx context.Context, q sql.Query, scan func(row sql.Scanner) error) error {
	return m.QueryRowsFunc(ctx, q, scan)
}

func (m mockDatabase) Exec(ctx context.Context, queries ...sql.Query) error {
	return m.ExecFunc(ctx, queries...)
}

type mockScanner func(dest ...interface{}) error

func (m mockScanner) Scan(dest ...interface{}) error {
	return m(dest...)
}
