package db

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"taskmanager/internal/config"
)

const (
	DriverMySQL    = "mysql"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

const (
	dateLayout = "2006-01-02"
	// Fixed width keeps lexical order equal to chronological order on SQLite,
	// where timestamps are stored as TEXT.
	sqliteTimestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Dialect hides what differs between the supported stores: driver wiring,
// value encoding, search capability, schema and error classification.
type Dialect interface {
	Name() string
	DriverName() string
	DSN(conf *config.Config) string
	// FullTextSearch reports whether SearchPredicate uses relevance-based
	// full-text matching or the plain contains-match fallback.
	FullTextSearch() bool
	SearchPredicate(query string) Predicate
	Timestamp(t time.Time) any
	Date(t time.Time) any
	// InsertReturning is true when generated ids come back through RETURNING
	// rather than LastInsertId.
	InsertReturning() bool
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
	Schema() []string
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPgx, DriverPostgres:
		return postgresDialect{driver: driver}, nil
	case DriverMySQL:
		return mysqlDialect{}, nil
	case DriverSQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

type postgresDialect struct {
	driver string
}

func (d postgresDialect) Name() string       { return "postgres" }
func (d postgresDialect) DriverName() string { return d.driver }

func (d postgresDialect) DSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		params = "sslmode=disable"
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.DbUser, conf.DbPassword),
		Host:     conf.DbHost + ":" + conf.DbPort,
		Path:     "/" + conf.DbName,
		RawQuery: params,
	}
	return dsn.String()
}

func (d postgresDialect) FullTextSearch() bool { return true }

func (d postgresDialect) SearchPredicate(query string) Predicate {
	return Predicate{
		SQL:  "to_tsvector('english', coalesce(t.title, '') || ' ' || coalesce(t.description, '')) @@ plainto_tsquery('english', ?)",
		Args: []any{query},
	}
}

func (d postgresDialect) Timestamp(t time.Time) any { return t.UTC() }
func (d postgresDialect) Date(t time.Time) any      { return truncateToDate(t) }
func (d postgresDialect) InsertReturning() bool     { return true }

func (d postgresDialect) IsUniqueViolation(err error) bool {
	return postgresErrorCode(err) == pgUniqueViolation
}

func (d postgresDialect) IsForeignKeyViolation(err error) bool {
	return postgresErrorCode(err) == pgForeignKeyViolation
}

func (d postgresDialect) Schema() []string { return postgresSchema }

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return "mysql" }
func (mysqlDialect) DriverName() string { return DriverMySQL }

func (mysqlDialect) DSN(conf *config.Config) string {
	params := conf.DbParams
	if params == "" {
		// clientFoundRows makes RowsAffected count matched rows, which the
		// optimistic update relies on.
		params = "parseTime=true&loc=UTC&clientFoundRows=true"
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}

func (mysqlDialect) FullTextSearch() bool { return true }

func (mysqlDialect) SearchPredicate(query string) Predicate {
	return Predicate{
		SQL:  "MATCH(t.title, t.description) AGAINST (? IN NATURAL LANGUAGE MODE)",
		Args: []any{query},
	}
}

func (mysqlDialect) Timestamp(t time.Time) any { return t.UTC() }
func (mysqlDialect) Date(t time.Time) any      { return t.Format(dateLayout) }
func (mysqlDialect) InsertReturning() bool     { return false }

func (mysqlDialect) IsUniqueViolation(err error) bool {
	return mysqlErrorNumber(err) == mysqlDuplicateEntry
}

func (mysqlDialect) IsForeignKeyViolation(err error) bool {
	return mysqlErrorNumber(err) == mysqlNoReferencedRow
}

func (mysqlDialect) Schema() []string { return mysqlSchema }

type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return "sqlite" }
func (sqliteDialect) DriverName() string { return DriverSQLite }

func (sqliteDialect) DSN(conf *config.Config) string {
	return SQLiteDSN(conf.DbName)
}

// SQLiteDSN builds a file DSN with foreign keys on and immediate write transactions.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_txlock=immediate"
}

func (sqliteDialect) FullTextSearch() bool { return false }

// SearchPredicate falls back to a contains-match: every whitespace separated
// term must appear in the title or the description. No ranking, no stemming.
func (sqliteDialect) SearchPredicate(query string) Predicate {
	terms := strings.Fields(query)
	parts := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*2)
	for _, term := range terms {
		pattern := "%" + escapeLike(term) + "%"
		parts = append(parts, `(t.title LIKE ? ESCAPE '\' OR coalesce(t.description, '') LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	return Predicate{SQL: strings.Join(parts, " AND "), Args: args}
}

func (sqliteDialect) Timestamp(t time.Time) any { return t.UTC().Format(sqliteTimestampLayout) }
func (sqliteDialect) Date(t time.Time) any      { return t.Format(dateLayout) }
func (sqliteDialect) InsertReturning() bool     { return false }

func (sqliteDialect) IsUniqueViolation(err error) bool {
	return sqliteConstraint(err, sqliteUnique)
}

func (sqliteDialect) IsForeignKeyViolation(err error) bool {
	return sqliteConstraint(err, sqliteForeignKey)
}

func (sqliteDialect) Schema() []string { return sqliteSchema }

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
