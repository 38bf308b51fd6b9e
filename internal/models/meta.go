package models

import "time"

// Meta stores key/value metadata about the store and past runs.
type Meta struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Meta) TableName() string {
	return "meta"
}

// Common meta keys.
const (
	MetaSchemaVersion  = "schema_version"
	MetaLastProfileRun = "last_profile_run"
	MetaTrackingID     = "tracking_id"
)
