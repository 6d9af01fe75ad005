package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/dirk.krummacker/contact-directory/internal/config"
	"gitlab.com/dirk.krummacker/contact-directory/internal/logging"
	"gitlab.com/dirk.krummacker/contact-directory/internal/repository"
	"gitlab.com/dirk.krummacker/contact-directory/internal/service"
	"go.uber.org/zap"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
// > DBDRIVER=postgres DBUSER=dirk DBPWD=bullo92 go run main.go
func main() {
	filePtr := flag.String("file", "", "the sql file to execute, the generated contacts table if empty")
	timeoutPtr := flag.Duration("timeout", time.Minute, "how long the migration may take")
	flag.Parse()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), os.Environ)
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dialect, err := repository.ParseDialect(cfg.DBDriver)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	var statements []string
	if *filePtr == "" {
		statements = repository.ContactsTable.CreateStatements(dialect)
	} else {
		statements, err = readStatementFile(*filePtr)
		if err != nil {
			logger.Fatal("could not read sql file", zap.String("file", *filePtr), zap.Error(err))
		}
	}

	db, err := service.CreateDatabase(cfg)
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutPtr)
	defer cancel()
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			logger.Fatal("migration failed", zap.String("statement", statement), zap.Error(err))
		}
	}
	logger.Info("migration done", zap.Int("statements", len(statements)))
}

func readStatementFile(path string) ([]string, error) {
	readFile, err := os.Open(path) // nosemgrep
	if err != nil {
		return nil, errors.Wrap(err, "open sql file")
	}
	defer readFile.Close()
	return splitStatements(readFile)
}

// splitStatements reads SQL statements line by line. A statement ends on the line that contains a
// semicolon; lines starting with "--" are skipped.
func splitStatements(r io.Reader) ([]string, error) {
	var statements []string
	fileScanner := bufio.NewScanner(r)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			statements = append(statements, strings.TrimSpace(builder.String()))
			builder = strings.Builder{}
		}
	}
	if err := fileScanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan sql file")
	}
	if rest := strings.TrimSpace(builder.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements, nil
}
