package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrWriteConflict means the transaction lost a race the database could not
// serialize. The whole operation can be retried.
var ErrWriteConflict = errors.New("write conflict, retry the operation")

// isUniqueViolation reports a unique or primary key violation. When the
// constraint name is not empty the violation must concern it.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation &&
			(constraint == "" || strings.Contains(pgErr.ConstraintName+" "+pgErr.Message, constraint))
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constraint == ""
	}

	// modernc.org/sqlite: "constraint failed: UNIQUE constraint failed: users.email (2067)"
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}

	return constraint == "" || strings.Contains(msg, constraint)
}

func isWriteConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}

	msg := err.Error()

	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
