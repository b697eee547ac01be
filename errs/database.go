package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseTimeout    = errors.New("database timeout")
)

// PostgreSQL SQLSTATE classes that point at the connection rather than the statement.
const (
	pgClassConnection = "08"
	pgClassResources  = "53"
	pgClassOperator   = "57"
)

// NewDatabaseError wraps a storage failure. Every storage failure is a 500 to the
// client; the classification only feeds the logs.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	kind := ErrDatabaseQuery
	var pgErr *pgconn.PgError
	var netErr net.Error
	switch {
	case errors.Is(cause, context.DeadlineExceeded):
		kind = ErrDatabaseTimeout
	case errors.As(cause, &pgErr):
		details = fmt.Sprintf("%s (sqlstate %s: %s)", details, pgErr.Code, pgErr.Message)
		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case pgClassConnection, pgClassResources, pgClassOperator:
				kind = ErrDatabaseConnection
			}
		}
	case pgconn.SafeToRetry(cause), errors.As(cause, &netErr):
		kind = ErrDatabaseConnection
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        kind,
		kind:       kind,
		Details:    details,
		Cause:      cause,
	}
}

func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseQuery) || errors.Is(err, ErrDatabaseConnection) || errors.Is(err, ErrDatabaseTimeout)
}

func IsDatabaseConnectionError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}
