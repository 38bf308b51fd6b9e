package db

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/subprofiler/internal/log"
	"github.com/asteroid-belt/subprofiler/internal/models"
)

// GetMeta retrieves a metadata value. Missing keys read as "".
func (db *DB) GetMeta(key string) (string, error) {
	var meta models.Meta
	err := db.First(&meta, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetMeta sets a metadata value.
func (db *DB) SetMeta(key, value string) error {
	meta := models.Meta{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&meta).Error
}

// GetOrCreateTrackingID returns the persistent anonymous tracking ID,
// creating one if it doesn't exist. On any error it falls back to a
// per-session ID.
func (db *DB) GetOrCreateTrackingID() string {
	id, err := db.GetMeta(models.MetaTrackingID)
	if err == nil && id != "" {
		return id
	}

	id = uuid.New().String()
	// Even if the save fails, the generated ID serves this session.
	if err := db.SetMeta(models.MetaTrackingID, id); err != nil {
		log.Errorf("save tracking id: %v", err)
	}
	return id
}
