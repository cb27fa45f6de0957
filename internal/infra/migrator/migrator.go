package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// ErrMigrate возвращается при ошибке применения миграций
var ErrMigrate = errors.New("migrator: failed to apply migrations")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose с миграциями из встроенной файловой системы
type Migrator struct {
	db         *sql.DB
	migrations fs.FS
	logger     Logger
}

// New создаёт мигратор
func New(db *sql.DB, migrations fs.FS, logger Logger) *Migrator {
	return &Migrator{
		db:         db,
		migrations: migrations,
		logger:     logger,
	}
}

// Up применяет все неприменённые миграции
func (m *Migrator) Up(ctx context.Context) error {
	provider, err := m.provider()
	if err != nil {
		return err
	}

	m.logger.Info("Applying database migrations...")

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMigrate, err)
	}
	for _, r := range results {
		m.logger.Info("Migration applied: %s (%s)", r.Source.Path, r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("%w: get version: %v", ErrMigrate, err)
	}
	m.logger.Info("Database schema at version %d", version)
	return nil
}

// Version текущая версия схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	provider, err := m.provider()
	if err != nil {
		return 0, err
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: get version: %v", ErrMigrate, err)
	}
	return version, nil
}

func (m *Migrator) provider() (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, m.db, m.migrations)
	if err != nil {
		return nil, fmt.Errorf("%w: create provider: %v", ErrMigrate, err)
	}
	return provider, nil
}
