package db

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/ncruces/go-sqlite3"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry  uint16 = 1062
	mysqlNoReferencedRow uint16 = 1452
)

var (
	sqliteUnique     = sqlite3.CONSTRAINT_UNIQUE
	sqliteForeignKey = sqlite3.CONSTRAINT_FOREIGNKEY
)

// postgresErrorCode returns the SQLSTATE of err for either postgres driver.
func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func mysqlErrorNumber(err error) uint16 {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}

func sqliteConstraint(err error, code sqlite3.ExtendedErrorCode) bool {
	var sqErr *sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode() == code
	}
	return false
}
