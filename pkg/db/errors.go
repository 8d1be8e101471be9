package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"gorm.io/gorm"
)

// Postgres error codes the data layer cares about.
const (
	pgUndefinedTable        = "42P01"
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
)

// Classify maps a driver error onto the platform error taxonomy exactly once,
// at the persistence boundary. Callers branch on the resulting code instead of
// re-inspecting driver message text.
func Classify(err error, action string) *pkgerrors.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, action)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return pkgerrors.Wrap(pkgerrors.CodeSchemaAbsent, err, action)
		case pgInsufficientPrivilege:
			return pkgerrors.Wrap(pkgerrors.CodeForbidden, err, action)
		case pgUniqueViolation:
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, action)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
	}

	// The sqlite driver used by repository tests reports missing tables as
	// plain message text.
	msg := err.Error()
	if strings.Contains(msg, "no such table") {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaAbsent, err, action)
	}
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, action)
	}

	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

// IsSchemaAbsent reports whether err indicates the backing table does not
// exist yet.
func IsSchemaAbsent(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeSchemaAbsent)
}

// IsNotFound reports whether err indicates a missing row.
func IsNotFound(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeNotFound)
}

// IsUniqueViolation reports whether err indicates a duplicate key write.
func IsUniqueViolation(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeConflict)
}
