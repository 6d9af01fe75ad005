package repository

import (
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Dialect is the SQL flavor of the database behind the repository. Its value is also the name of
// the database/sql driver.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// mysqlDuplicateEntry is the MySQL server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// pqUniqueViolation is the PostgreSQL SQLSTATE for a unique key violation.
const pqUniqueViolation = "23505"

// ParseDialect returns the dialect for a driver name.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case MySQL, Postgres:
		return Dialect(name), nil
	}
	return "", errors.Errorf("unsupported database driver %q", name)
}

// DriverName returns the name of the database/sql driver.
func (d Dialect) DriverName() string {
	return string(d)
}

// Rebind replaces the '?' placeholders of a query with the placeholders of the dialect.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(d.DriverName()), query)
}

// IsUniqueViolation reports whether err was caused by a unique constraint of the database.
func (d Dialect) IsUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// returnsInsertID reports whether the driver supports sql.Result.LastInsertId. PostgreSQL does
// not, the id is read with a RETURNING clause instead.
func (d Dialect) returnsInsertID() bool {
	return d == MySQL
}
