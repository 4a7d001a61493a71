// Package db owns the SQLite database file: opening, schema, seed data.
package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Open opens the database file, ensures the schema exists and seeds empty
// lookup tables. Safe to call on every startup.
func Open(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := Seed(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}
	return sqlDB, nil
}

// Seed inserts initial rows, but only into tables that are still empty, so
// restarting never duplicates data.
func Seed(sqlDB *sql.DB) error {
	if err := seedCategories(sqlDB); err != nil {
		return err
	}
	if err := seedApartments(sqlDB); err != nil {
		return err
	}
	if err := seedAreas(sqlDB); err != nil {
		return err
	}
	return seedAdmin(sqlDB)
}

func tableEmpty(sqlDB *sql.DB, table string) (bool, error) {
	var n int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func seedCategories(sqlDB *sql.DB) error {
	empty, err := tableEmpty(sqlDB, "categories")
	if err != nil || !empty {
		return err
	}
	names := []string{"MEP", "Electrical", "Plumbing", "HVAC", "Civil", "Cleaning", "Security", "Landscaping"}
	for _, name := range names {
		if _, err := sqlDB.Exec(`INSERT INTO categories (name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	log.Printf("[db][seed] categories inserted: %d", len(names))
	return nil
}

func seedApartments(sqlDB *sql.DB) error {
	empty, err := tableEmpty(sqlDB, "apartments")
	if err != nil || !empty {
		return err
	}
	for floor := 1; floor <= 4; floor++ {
		for unit := 1; unit <= 4; unit++ {
			number := fmt.Sprintf("%d%02d", floor, unit)
			if _, err := sqlDB.Exec(`INSERT INTO apartments (number, floor, notes) VALUES (?,?,'')`, number, floor); err != nil {
				return err
			}
		}
	}
	log.Printf("[db][seed] apartments inserted")
	return nil
}

func seedAreas(sqlDB *sql.DB) error {
	empty, err := tableEmpty(sqlDB, "areas")
	if err != nil || !empty {
		return err
	}
	names := []string{"Lobby", "Roof", "Parking", "Boiler Room", "Stairwell A", "Stairwell B", "Garden"}
	for _, name := range names {
		if _, err := sqlDB.Exec(`INSERT INTO areas (name, notes) VALUES (?, '')`, name); err != nil {
			return err
		}
	}
	log.Printf("[db][seed] areas inserted: %d", len(names))
	return nil
}

// seedAdmin creates the bootstrap admin account. The password must be
// changed after first login.
func seedAdmin(sqlDB *sql.DB) error {
	empty, err := tableEmpty(sqlDB, "users")
	if err != nil || !empty {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = sqlDB.Exec(`
		INSERT INTO users (name, email, phone, role, password_hash, active, created_at)
		VALUES ('Administrator', 'admin@maintdesk.local', '', 'admin', ?, 1, ?)`,
		string(hash), time.Now().UTC().UnixMilli(),
	)
	if err == nil {
		log.Printf("[db][seed] bootstrap admin created: admin@maintdesk.local")
	}
	return err
}
