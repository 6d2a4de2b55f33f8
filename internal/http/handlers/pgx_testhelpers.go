package handlers

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SimpleRow adapts a scan closure to pgx.Row for handler tests.
type SimpleRow struct {
	scan func(dest ...any) error
}

func NewSimpleRow(scanner func(dest ...any) error) SimpleRow {
	return SimpleRow{scan: scanner}
}

func (r SimpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// TestRowsBase provides no-op implementations for the parts of pgx.Rows that
// handler tests never touch.
type TestRowsBase struct{}

func (TestRowsBase) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (TestRowsBase) Conn() *pgx.Conn { return nil }

func (TestRowsBase) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (TestRowsBase) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (TestRowsBase) RawValues() [][]byte { return nil }
