package history

import "gorm.io/gorm"

// Record describes one successful password generation. It never holds the password.
type Record struct {
	gorm.Model
	RunID          string `gorm:"size:36;uniqueIndex:idx_generations_run_id;not null"`
	SongURL        string `gorm:"type:text;not null"`
	PagesCrawled   int    `gorm:"not null"`
	CandidateCount int    `gorm:"not null"`
	LyricLength    int    `gorm:"not null"`
	SuffixLength   int    `gorm:"not null"`
}

// TableName defines the table name for the Record model.
func (Record) TableName() string {
	return "generations"
}
