package database

import (
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// Options tunes how the database connection is opened.
type Options struct {
	LogLevel logger.LogLevel
}

// DefaultOptions logs slow queries and errors only.
func DefaultOptions() Options {
	return Options{LogLevel: logger.Warn}
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dsn string) (*Database, error) {
	return NewDatabaseWithOptions(dsn, DefaultOptions())
}

func NewDatabaseWithOptions(dsn string, opts Options) (*Database, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Audiobook{},
		&entities.Purchase{},
		&entities.PlaybackProgress{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully (%s)", DriverName(dsn))

	return &Database{DB: db}, nil
}

// IsPostgresDSN reports whether dsn is a PostgreSQL connection URL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DriverName returns the name of the SQL driver used for dsn.
func DriverName(dsn string) string {
	if IsPostgresDSN(dsn) {
		return "postgres"
	}
	return "sqlite"
}

// dialectorFor picks PostgreSQL (through lib/pq) for postgres URLs and treats
// anything else as a sqlite file path.
func dialectorFor(dsn string) gorm.Dialector {
	if IsPostgresDSN(dsn) {
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        dsn,
		})
	}
	return sqlite.Open(dsn)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection pool can reach the database.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
