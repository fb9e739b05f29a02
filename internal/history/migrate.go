package history

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const runIDIndex = "idx_generations_run_id"

// Migrate creates or updates the generations table and verifies the run id
// index the repository relies on.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	migrator := db.WithContext(ctx).Migrator()
	created := !migrator.HasTable(&Record{})

	if err := migrator.AutoMigrate(&Record{}); err != nil {
		return eris.Wrapf(err, "migrating %s table", Record{}.TableName())
	}

	if !migrator.HasIndex(&Record{}, runIDIndex) {
		return eris.Errorf("index %s missing after migration", runIDIndex)
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"table":   Record{}.TableName(),
			"created": created,
		}).Debug("history schema ready")
	}

	return nil
}
