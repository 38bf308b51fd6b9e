package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "domains", Domain{}.TableName())
	assert.Equal(t, "rules", Rule{}.TableName())
	assert.Equal(t, "meta", Meta{}.TableName())
}
