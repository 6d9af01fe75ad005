package main

import (
	"log"
	"os"
	"strconv"

	"gitlab.com/dirk.krummacker/contact-directory/internal/config"
	"gitlab.com/dirk.krummacker/contact-directory/internal/logging"
	"gitlab.com/dirk.krummacker/contact-directory/internal/repository"
	"gitlab.com/dirk.krummacker/contact-directory/internal/service"
	"go.uber.org/zap"
)

// Usage example on the command line:
// > PORT=8080 DBUSER=dirk DBPWD=bullo92 GIN_MODE=release GIN_LOGGING=OFF go run main.go
// > CONFIG_FILE=contacts.yaml DBDRIVER=postgres go run main.go
func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), os.Environ)
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := service.CreateDatabase(cfg)
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	dialect, _ := repository.ParseDialect(cfg.DBDriver)
	svc := service.New(db, repository.NewContacts(dialect), logger, cfg)
	router := svc.SetupHttpRouter()

	logger.Info("starting contact directory",
		zap.Int("port", cfg.Port),
		zap.String("dbdriver", cfg.DBDriver),
		zap.String("dbhost", cfg.DBHost),
		zap.Int("birthday_window", cfg.BirthdayWindow))
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
