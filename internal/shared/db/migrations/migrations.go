package migrations

import (
	"embed"
	"errors"

	"github.com/cristianortiz/proxyBidding/internal/shared/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

var log = logger.GetLogger() // Instancia logger para el pakg

//go:embed sql/*.sql
var migrationFiles embed.FS

// RunMigrations applies every pending up migration embedded in the binary
func RunMigrations(dbURL string) error {
	log.Info("RunMigrations", zap.Int("files", countMigrations()))

	source, err := iofs.New(migrationFiles, "sql")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info("Migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func countMigrations() int {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return 0
	}
	return len(entries)
}
