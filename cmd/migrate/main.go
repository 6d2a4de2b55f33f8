package main

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetConnMaxLifetime(time.Minute)

	if err := run(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied")
}

func run(db *sql.DB) error {
	if _, err := db.Exec(`create table if not exists schema_migrations (
        name text primary key,
        applied_at timestamptz not null default now()
    )`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(db, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := apply(db, name); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		fmt.Printf("applied %s\n", name)
	}
	return nil
}

func isApplied(db *sql.DB, name string) (bool, error) {
	var count int
	if err := db.QueryRow(`select count(*) from schema_migrations where name = $1`, name).Scan(&count); err != nil {
		return false, fmt.Errorf("check %s: %w", name, err)
	}
	return count > 0, nil
}

func apply(db *sql.DB, name string) error {
	body, err := migrationFS.ReadFile("migrations/" + name)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(body)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`insert into schema_migrations(name) values ($1)`, name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
