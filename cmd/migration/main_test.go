package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	script := `-- contacts
CREATE TABLE contacts (
  id BIGINT NOT NULL AUTO_INCREMENT,
  PRIMARY KEY (id)
);
DROP TABLE old_contacts;
SELECT 1`

	statements, err := splitStatements(strings.NewReader(script))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CREATE TABLE contacts (   id BIGINT NOT NULL AUTO_INCREMENT,   PRIMARY KEY (id) );",
		"DROP TABLE old_contacts;",
		"SELECT 1",
	}, statements)
}

func TestSplitStatementsEmpty(t *testing.T) {
	statements, err := splitStatements(strings.NewReader("\n-- nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, statements)
}

func TestReadStatementFileMissing(t *testing.T) {
	_, err := readStatementFile("does-not-exist.sql")
	assert.Error(t, err)
}
