package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // Registers the pure Go "sqlite" database/sql driver.

	"github.com/ecell/portal-api/internal/config"
	"github.com/ecell/portal-api/internal/logger"
)

const sqliteDriverName = "sqlite"

// Open connects to the database selected by conf.Database.
func Open(conf *config.AppConfig) (*gorm.DB, error) {
	gormConf := &gorm.Config{
		Logger:  logger.NewGormLogger(conf.API.Environment),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	switch conf.Database.Driver {
	case config.DriverSQLite:
		return OpenSQLite(SQLiteFileDSN(conf.Database.SQLitePath), gormConf)
	case config.DriverPostgres:
		if conf.Database.URL != "" {
			return OpenPostgresWithURL(conf.Database.URL, gormConf)
		}

		return OpenPostgres(conf.Postgres, gormConf)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}
}

func OpenPostgres(conf *config.PostgresConfig, gormConf *gorm.Config) (*gorm.DB, error) {
	return OpenPostgresWithURL(conf.DSN(), gormConf)
}

func OpenPostgresWithURL(url string, gormConf *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), gormConf)
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// OpenSQLite opens a SQLite database through modernc.org/sqlite.
//
// SQLite allows a single writer, so the pool is capped at one connection and
// transactions are serialized by database/sql instead of failing with
// SQLITE_BUSY.
func OpenSQLite(dsn string, gormConf *gorm.Config) (*gorm.DB, error) {
	if gormConf == nil {
		gormConf = &gorm.Config{}
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: sqliteDriverName,
		DSN:        dsn,
	}), gormConf)
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// SQLiteFileDSN builds a modernc DSN for a database file with foreign keys on.
func SQLiteFileDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// SQLiteMemoryDSN builds a DSN for a named in-memory database. Connections
// opened with the same name share the database.
func SQLiteMemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB -> %w", err)
	}

	return sqlDB.Close()
}
