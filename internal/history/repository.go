package history

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Repository defines persistence operations for generation records.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}

// GormRepository persists records using a Gorm database connection.
type GormRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

var _ Repository = (*GormRepository)(nil)

const defaultListLimit = 20

// NewRepository constructs a Gorm-backed repository implementation.
func NewRepository(db *gorm.DB, logger *logrus.Logger) (*GormRepository, error) {
	if db == nil {
		return nil, eris.New("gorm DB is required")
	}

	return &GormRepository{db: db, logger: logger}, nil
}

// Save inserts a new generation record.
func (r *GormRepository) Save(ctx context.Context, record *Record) error {
	if record == nil {
		return eris.New("record is nil")
	}

	record.RunID = strings.TrimSpace(record.RunID)
	if record.RunID == "" {
		return eris.New("record run id is required")
	}

	if strings.TrimSpace(record.SongURL) == "" {
		return eris.New("record song url is required")
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		r.logError(logrus.Fields{"run_id": record.RunID}, err, "saving generation record")
		return eris.Wrapf(err, "saving generation record: %s", record.RunID)
	}

	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *GormRepository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var records []Record
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		r.logError(nil, err, "listing generation records")
		return nil, eris.Wrap(err, "listing generation records")
	}

	return records, nil
}

func (r *GormRepository) logError(fields logrus.Fields, err error, message string) {
	if r.logger == nil {
		return
	}

	entry := r.logger.WithField("error", err.Error())
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Error(message)
}
