package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate creates the tables for driver if they do not exist.  Every
// statement is idempotent, so Migrate runs on each start.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	name := strings.ToLower(strings.TrimSpace(driver))
	if name == "" {
		name = DriverMySQL
	}
	src, err := schemaFS.ReadFile("schema/" + name + ".sql")
	if err != nil {
		return fmt.Errorf("database: no schema for driver %q: %w", driver, err)
	}
	for _, stmt := range splitStatements(string(src)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database: migrate: %w", err)
		}
	}
	return nil
}

// splitStatements splits a schema file on semicolons, dropping comment
// lines and empty statements.
func splitStatements(src string) []string {
	var b strings.Builder
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	var out []string
	for _, part := range strings.Split(b.String(), ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
