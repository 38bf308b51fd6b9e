package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/subprofiler/internal/models"
)

// ReadDomains returns every stored domain grouped by project, each list in
// insertion order.
func (db *DB) ReadDomains() (map[string][]string, error) {
	var rows []models.Domain
	if err := db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: read domains: %w", ErrPersistence, err)
	}

	groups := make(map[string][]string)
	for _, row := range rows {
		groups[row.ProjectID] = append(groups[row.ProjectID], row.Name)
	}
	return groups, nil
}

// DomainsFor returns the domains of one project in insertion order.
func (db *DB) DomainsFor(projectID string) ([]string, error) {
	var names []string
	err := db.Model(&models.Domain{}).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("%w: read domains for %s: %w", ErrPersistence, projectID, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, projectID)
	}
	return names, nil
}

// ImportDomains stores names under projectID. Names already stored for the
// project are ignored. Returns the number of rows added.
func (db *DB) ImportDomains(projectID string, names []string) (int, error) {
	added := 0
	err := db.Transaction(func(tx *DB) error {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Domain{ProjectID: projectID, Name: name})
			if res.Error != nil {
				return res.Error
			}
			added += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: import domains for %s: %w", ErrPersistence, projectID, err)
	}
	return added, nil
}

// ListGroups returns every project with its domain count, ordered by ID.
func (db *DB) ListGroups() ([]models.GroupSummary, error) {
	var groups []models.GroupSummary
	err := db.Model(&models.Domain{}).
		Select("project_id, COUNT(*) AS domain_count").
		Group("project_id").
		Order("project_id ASC").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list groups: %w", ErrPersistence, err)
	}
	return groups, nil
}

// DeleteGroup removes a project's domains and rules.
func (db *DB) DeleteGroup(projectID string) error {
	err := db.Transaction(func(tx *DB) error {
		if err := tx.Delete(&models.Domain{}, "project_id = ?", projectID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rule{}, "project_id = ?", projectID).Error
	})
	if err != nil {
		return fmt.Errorf("%w: delete group %s: %w", ErrPersistence, projectID, err)
	}
	return nil
}
