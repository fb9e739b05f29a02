package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreOptions controls how the SQLite history database is opened.
type StoreOptions struct {
	Path        string
	Logger      logger.Interface
	BusyTimeout time.Duration
}

// OpenStore establishes a SQLite connection using Gorm, creating the parent directory if needed.
func OpenStore(opts StoreOptions) (*gorm.DB, error) {
	if opts.Path == "" {
		return nil, eris.New("database path is required")
	}

	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, eris.Wrapf(err, "creating database directory: %s", dir)
		}
	}

	if opts.BusyTimeout == 0 {
		opts.BusyTimeout = 5 * time.Second
	}

	busyTimeoutMillis := opts.BusyTimeout / time.Millisecond
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", opts.Path, busyTimeoutMillis)

	gormLogger := opts.Logger
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, eris.Wrap(err, "opening sqlite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, eris.Wrap(err, "retrieving sql.DB from gorm")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d;", int(busyTimeoutMillis))).Error; err != nil {
		return nil, eris.Wrap(err, "configuring busy timeout pragma")
	}

	return db, nil
}

// CloseStore releases the underlying database resources.
func CloseStore(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return eris.Wrap(err, "retrieving sql.DB for close")
	}

	if err := sqlDB.Close(); err != nil {
		return eris.Wrap(err, "closing database connection")
	}

	return nil
}
