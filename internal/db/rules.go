package db

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/subprofiler/internal/hash"
	"github.com/asteroid-belt/subprofiler/internal/models"
)

// latestFirst orders a project's rules from the most recently written.
const latestFirst = "revision DESC, id DESC"

// WriteRules persists one rule per project in a single transaction. Either
// every rule is written or none is. Every write of a batch gets the same new
// revision, so the rules just written are the latest of their projects even
// when an identical rule was stored before; that row is updated in place
// instead of duplicated.
func (db *DB) WriteRules(rules map[string]string) error {
	if len(rules) == 0 {
		return nil
	}

	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	err := db.Transaction(func(tx *DB) error {
		var revision int64
		if err := tx.Model(&models.Rule{}).Select("COALESCE(MAX(revision), 0)").Scan(&revision).Error; err != nil {
			return fmt.Errorf("read revision: %w", err)
		}
		revision++

		for _, id := range ids {
			pattern := rules[id]
			rule := models.Rule{
				ProjectID:   id,
				Regexp:      pattern,
				Fingerprint: hash.TruncatedSHA256(pattern),
				Revision:    revision,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}, {Name: "fingerprint"}},
				DoUpdates: clause.AssignmentColumns([]string{"revision", "updated_at"}),
			}).Create(&rule).Error
			if err != nil {
				return fmt.Errorf("write rule for %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// LatestRule returns the most recently written rule for a project.
func (db *DB) LatestRule(projectID string) (*models.Rule, error) {
	var rule models.Rule
	err := db.Where("project_id = ?", projectID).Order(latestFirst).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, projectID)
		}
		return nil, fmt.Errorf("%w: read rule for %s: %w", ErrPersistence, projectID, err)
	}
	return &rule, nil
}

// ListRules returns every stored rule ordered by project, newest first
// within a project.
func (db *DB) ListRules() ([]models.Rule, error) {
	var rules []models.Rule
	if err := db.Order("project_id ASC, " + latestFirst).Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("%w: list rules: %w", ErrPersistence, err)
	}
	return rules, nil
}

// RulesFor returns a project's rules, newest first.
func (db *DB) RulesFor(projectID string) ([]models.Rule, error) {
	var rules []models.Rule
	if err := db.Where("project_id = ?", projectID).Order(latestFirst).Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("%w: list rules for %s: %w", ErrPersistence, projectID, err)
	}
	return rules, nil
}

// DeleteRules removes every rule stored for a project.
func (db *DB) DeleteRules(projectID string) (int64, error) {
	res := db.Delete(&models.Rule{}, "project_id = ?", projectID)
	if res.Error != nil {
		return 0, fmt.Errorf("%w: delete rules for %s: %w", ErrPersistence, projectID, res.Error)
	}
	return res.RowsAffected, nil
}
