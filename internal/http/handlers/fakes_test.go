package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"adcraft/internal/gen"
)

// fakeSQL routes the SQLExecutor calls to per-test closures and records the
// last query and args for assertions.
type fakeSQL struct {
	queryRowFn func(query string, args ...any) pgx.Row
	execFn     func(query string, args ...any) (pgconn.CommandTag, error)
	queryFn    func(query string, args ...any) (pgx.Rows, error)

	lastQuery string
	lastArgs  []any
}

func (f *fakeSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.lastQuery = query
	f.lastArgs = args
	if f.execFn != nil {
		return f.execFn(query, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	f.lastQuery = query
	f.lastArgs = args
	if f.queryRowFn != nil {
		return f.queryRowFn(query, args...)
	}
	return NewSimpleRow(nil)
}

func (f *fakeSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	f.lastQuery = query
	f.lastArgs = args
	if f.queryFn != nil {
		return f.queryFn(query, args...)
	}
	return nil, errors.New("query not stubbed")
}

func newTestApp(sql *fakeSQL) *App {
	orchestrator, err := gen.Build(gen.ProviderConfig{
		OpenAIKey:     "sk-test",
		RunwayKey:     "rw-test",
		ImageProvider: "openai",
	})
	if err != nil {
		panic(err)
	}
	return &App{
		SQL:          sql,
		Logger:       zerolog.Nop(),
		Orchestrator: orchestrator,
		JWTSecret:    "test-secret",
		AssetBaseURL: "http://localhost:8080/static",
	}
}

func mustBuildTextOnly(t *testing.T) *gen.Orchestrator {
	t.Helper()
	orchestrator, err := gen.Build(gen.ProviderConfig{OpenAIKey: "sk-test"})
	if err != nil {
		t.Fatalf("build orchestrator: %v", err)
	}
	return orchestrator
}

func scanStrings(dest []any, values ...any) error {
	if len(dest) != len(values) {
		return errors.New("dest count mismatch")
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			s, ok := v.(string)
			if !ok {
				return errors.New("expected string value")
			}
			*d = s
		case *int:
			n, ok := v.(int)
			if !ok {
				return errors.New("expected int value")
			}
			*d = n
		default:
			return errors.New("unsupported dest type")
		}
	}
	return nil
}
