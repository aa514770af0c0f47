package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open initialises the SQLite database under dataDir and migrates the schema.
func Open(dataDir string) (*gorm.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "wavecast.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&SearchSpace{},
		&SearchSpaceMembership{},
		&Podcast{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// User identifies an actor. Authentication itself happens at the transport
// boundary; this table only anchors memberships.
type User struct {
	ID        uint      `gorm:"primaryKey"       json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchSpace is the ownership and access-control scope for podcasts.
type SearchSpace struct {
	ID        uint      `gorm:"primaryKey"        json:"id"`
	Name      string    `gorm:"not null"          json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchSpaceMembership grants a user a set of capabilities over one search
// space. Capabilities are stored as a JSON array of capability names.
type SearchSpaceMembership struct {
	ID            uint           `gorm:"primaryKey"                           json:"id"`
	SearchSpaceID uint           `gorm:"uniqueIndex:idx_space_user;not null"  json:"search_space_id"`
	UserID        uint           `gorm:"uniqueIndex:idx_space_user;not null"  json:"user_id"`
	Permissions   datatypes.JSON `gorm:"not null"                             json:"permissions"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Podcast is created exactly once by the generation worker on success. There
// is no placeholder row while a job is in flight; the job handle represents
// that state.
type Podcast struct {
	ID              uint           `gorm:"primaryKey"              json:"id"`
	SearchSpaceID   uint           `gorm:"index;not null"          json:"search_space_id"`
	Title           string         `gorm:"not null"                json:"title"`
	FileLocation    string         `gorm:"type:varchar(512)"       json:"file_location"`
	Transcript      datatypes.JSON `json:"podcast_transcript"`
	DurationSeconds float64        `json:"duration_seconds"`
	CreatedAt       time.Time      `json:"created_at"`
}
