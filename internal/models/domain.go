// Package models defines the persisted records: domains grouped by project
// and the regex rules generated for them.
package models

import "time"

// Domain is one domain name belonging to a project (group).
type Domain struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID string    `gorm:"size:64;not null;uniqueIndex:idx_domains_project_name" json:"project_id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_domains_project_name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Domain) TableName() string {
	return "domains"
}

// GroupSummary is a project with the number of domains stored for it.
type GroupSummary struct {
	ProjectID   string `json:"project_id"`
	DomainCount int64  `json:"domain_count"`
}
