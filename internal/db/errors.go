package db

import "errors"

var (
	// ErrPersistence wraps failures reported by the underlying database
	// while reading domains or writing rules.
	ErrPersistence = errors.New("persistence error")

	// ErrGroupNotFound is returned when no domains are stored for a group.
	ErrGroupNotFound = errors.New("group not found")

	// ErrRuleNotFound is returned when a group has no persisted rule.
	ErrRuleNotFound = errors.New("rule not found")
)
