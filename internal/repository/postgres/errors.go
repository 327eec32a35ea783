package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"carpool/internal/repository"
)

// Postgres error codes that mean a conditional write lost against a concurrent one.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeTooManyConnections   = "53300"
	classConnectionException = "08"
)

// translate maps driver errors onto the repository error categories.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == codeUniqueViolation,
			pqErr.Code == codeSerializationFailure,
			pqErr.Code == codeDeadlockDetected:
			return fmt.Errorf("%w: %s", repository.ErrPreconditionFailed, pqErr.Message)
		case pqErr.Code == codeAdminShutdown,
			pqErr.Code == codeTooManyConnections,
			pqErr.Code.Class() == classConnectionException:
			return fmt.Errorf("%w: %s", repository.ErrStoreUnavailable, pqErr.Message)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return err
}
