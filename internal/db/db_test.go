package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func count(t *testing.T, sqlDB *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestOpenSeedsOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maintdesk.db")

	sqlDB, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	categories := count(t, sqlDB, "categories")
	apartments := count(t, sqlDB, "apartments")
	if categories == 0 || apartments == 0 {
		t.Fatalf("expected seeded lookup tables, got categories=%d apartments=%d", categories, apartments)
	}
	if users := count(t, sqlDB, "users"); users != 1 {
		t.Fatalf("expected exactly the seeded admin, got %d users", users)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// a restart must not duplicate seed rows
	sqlDB, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer sqlDB.Close()
	if got := count(t, sqlDB, "categories"); got != categories {
		t.Fatalf("categories reseeded: %d -> %d", categories, got)
	}
	if got := count(t, sqlDB, "users"); got != 1 {
		t.Fatalf("admin reseeded: got %d users", got)
	}
}

func TestSeededAdminCredentials(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "maintdesk.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()

	var role, hash string
	var active int
	err = sqlDB.QueryRow(`SELECT role, password_hash, active FROM users WHERE email = 'admin@maintdesk.local'`).
		Scan(&role, &hash, &active)
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if role != "admin" || active != 1 {
		t.Fatalf("expected an active admin, got role=%s active=%d", role, active)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")) != nil {
		t.Fatal("seeded admin password hash does not match the default password")
	}
}
