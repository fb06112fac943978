package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createCatalogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE catalog_entities (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		name TEXT NOT NULL,
		img TEXT NOT NULL,
		duration TEXT NOT NULL,
		level TEXT NOT NULL,
		description TEXT NOT NULL,
		skills TEXT NOT NULL,
		perks TEXT NOT NULL,
		syllabus TEXT NOT NULL,
		rating REAL,
		students REAL,
		slug TEXT NOT NULL,
		href TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE(type, slug)
	);`)
}

func createEnrollmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE enrollments (
		id TEXT PRIMARY KEY,
		user_email TEXT NOT NULL,
		course_type TEXT NOT NULL,
		course_slug TEXT NOT NULL,
		status TEXT NOT NULL,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		profile TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
