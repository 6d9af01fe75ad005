package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStatementsMySQL(t *testing.T) {
	statements := ContactsTable.CreateStatements(MySQL)
	require.Len(t, statements, 1)
	ddl := statements[0]
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS contacts (")
	assert.Contains(t, ddl, "id BIGINT NOT NULL AUTO_INCREMENT")
	assert.Contains(t, ddl, "first_name VARCHAR(50) NOT NULL")
	assert.Contains(t, ddl, "email VARCHAR(150) NOT NULL")
	assert.Contains(t, ddl, "phone VARCHAR(17) NOT NULL")
	assert.Contains(t, ddl, "birthday DATE NOT NULL")
	assert.Contains(t, ddl, "other TEXT,")
	assert.Contains(t, ddl, "PRIMARY KEY (id)")
	assert.Contains(t, ddl, "INDEX ix_contacts_first_name (first_name)")
	assert.Contains(t, ddl, "INDEX ix_contacts_last_name (last_name)")
	assert.Contains(t, ddl, "UNIQUE INDEX ix_contacts_email (email)")
	assert.NotContains(t, ddl, "ix_contacts_phone")
}

func TestCreateStatementsPostgres(t *testing.T) {
	statements := ContactsTable.CreateStatements(Postgres)
	require.Len(t, statements, 4)
	assert.Contains(t, statements[0], "id BIGSERIAL NOT NULL")
	assert.NotContains(t, statements[0], "AUTO_INCREMENT")
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS ix_contacts_first_name ON contacts (first_name)", statements[1])
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS ix_contacts_last_name ON contacts (last_name)", statements[2])
	assert.Equal(t, "CREATE UNIQUE INDEX IF NOT EXISTS ix_contacts_email ON contacts (email)", statements[3])
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)
	assert.Equal(t, "SELECT * FROM contacts WHERE id = $1 AND email = $2",
		d.Rebind("SELECT * FROM contacts WHERE id = ? AND email = ?"))

	_, err = ParseDialect("sqlite3")
	assert.Error(t, err)
}
