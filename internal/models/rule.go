package models

import "time"

// Rule is a persisted detection pattern for a project.
// Fingerprint identifies the pattern text, so rewriting an identical rule
// keeps one row and only moves its Revision forward. The latest rule of a
// project is the one with the highest Revision.
type Rule struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   string    `gorm:"size:64;not null;index;uniqueIndex:idx_rules_project_fingerprint" json:"project_id"`
	Regexp      string    `gorm:"type:text;not null" json:"regexp"`
	Fingerprint string    `gorm:"size:16;not null;uniqueIndex:idx_rules_project_fingerprint" json:"fingerprint"`
	Revision    int64     `gorm:"not null;default:0;index" json:"revision"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Rule) TableName() string {
	return "rules"
}

// Stats holds aggregate counts for the store.
type Stats struct {
	TotalGroups    int64     `json:"total_groups"`
	TotalDomains   int64     `json:"total_domains"`
	TotalRules     int64     `json:"total_rules"`
	CacheSizeBytes int64     `json:"cache_size_bytes"`
	LastUpdated    time.Time `json:"last_updated"`
}
