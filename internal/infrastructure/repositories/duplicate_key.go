package repositories

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "learnpath.backend/internal/domain/errors"
)

const pgUniqueViolation = "23505"

// Key (type, slug)=(skillpath, web-dev-101) already exists.
var pgDetailKeyRe = regexp.MustCompile(`Key \(([^)]+)\)=`)

// constraintColumns resolves columns when the driver reports only the index name.
var constraintColumns = map[string][]string{
	"idx_catalog_entities_type_slug": {"type", "slug"},
	"idx_users_email":                {"email"},
}

// translateWriteError converts storage unique violations into
// *domainerrors.DuplicateKeyError and returns any other error unchanged.
// Columns listed in scope are dropped from the reported fields.
func translateWriteError(err error, scope ...string) error {
	if err == nil {
		return nil
	}
	fields, ok := duplicateFields(err)
	if !ok {
		return err
	}
	return &domainerrors.DuplicateKeyError{Fields: withoutColumns(fields, scope)}
}

func duplicateFields(err error) ([]string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil, false
		}
		return fieldsFromPG(pgErr.Detail, pgErr.ConstraintName), true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) != pgUniqueViolation {
			return nil, false
		}
		return fieldsFromPG(pqErr.Detail, pqErr.Constraint), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, true
	}

	// sqlite: "UNIQUE constraint failed: catalog_entities.type, catalog_entities.slug"
	msg := err.Error()
	if idx := strings.Index(msg, "UNIQUE constraint failed:"); idx >= 0 {
		cols := strings.Split(msg[idx+len("UNIQUE constraint failed:"):], ",")
		fields := make([]string, 0, len(cols))
		for _, col := range cols {
			col = strings.TrimSpace(col)
			if dot := strings.LastIndex(col, "."); dot >= 0 {
				col = col[dot+1:]
			}
			if col != "" {
				fields = append(fields, col)
			}
		}
		return fields, true
	}
	return nil, false
}

func fieldsFromPG(detail, constraint string) []string {
	if m := pgDetailKeyRe.FindStringSubmatch(detail); len(m) == 2 {
		parts := strings.Split(m[1], ",")
		fields := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				fields = append(fields, p)
			}
		}
		return fields
	}
	if cols, ok := constraintColumns[constraint]; ok {
		return append([]string(nil), cols...)
	}
	return nil
}

func withoutColumns(fields, scope []string) []string {
	if len(scope) == 0 {
		return fields
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		skip := false
		for _, s := range scope {
			if f == s {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, f)
		}
	}
	return out
}
