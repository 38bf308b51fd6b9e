package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/subprofiler/internal/db"
	"github.com/asteroid-belt/subprofiler/internal/log"
	"github.com/asteroid-belt/subprofiler/internal/models"
)

var scenarioGroups = map[string][]string{
	"1": {"ab12.example.com", "xy99.example.com", "mail.example.com"},
	"2": {"www.example.org", "mail.example.org"},
}

func TestProfileGroups(t *testing.T) {
	database := testDB(t)
	seed(t, database, scenarioGroups)

	metricsPath := filepath.Join(t.TempDir(), "subprofiler.prom")
	var out bytes.Buffer

	summary, err := profileGroups(context.Background(), database, profileOptions{
		entropyLimit: 1.0,
		workers:      2,
		metricsFile:  metricsPath,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.groups)
	assert.Equal(t, 1, summary.failed)
	assert.Equal(t, 1, summary.rulesWritten)

	text := out.String()
	assert.Contains(t, text, "Database read successfully")
	assert.Contains(t, text, "analysis started for group 1")
	assert.Contains(t, text, "analysis started for group 2")
	assert.Contains(t, text, `^[1-29a-bx-y]{4,4}\.`)
	assert.Contains(t, text, "no rule: group 2:")
	assert.Contains(t, text, "Rules written successfully: 1 rule(s)")

	rule, err := database.LatestRule("1")
	require.NoError(t, err)
	assert.Equal(t, `^[1-29a-bx-y]{4,4}\.`, rule.Regexp)

	_, err = database.LatestRule("2")
	assert.ErrorIs(t, err, db.ErrRuleNotFound)

	lastRun, err := database.GetMeta(models.MetaLastProfileRun)
	require.NoError(t, err)
	assert.NotEmpty(t, lastRun)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `subprofiler_groups_total{outcome="ok"} 1`)
	assert.Contains(t, string(data), "subprofiler_rules_written_total 1")
}

func TestProfileGroups_DryRun(t *testing.T) {
	database := testDB(t)
	seed(t, database, scenarioGroups)

	var out bytes.Buffer
	summary, err := profileGroups(context.Background(), database, profileOptions{
		entropyLimit: 1.0,
		workers:      1,
		dryRun:       true,
	}, &out)
	require.NoError(t, err)

	assert.Zero(t, summary.rulesWritten)
	assert.Contains(t, out.String(), "Dry run: 1 rule(s) not written")

	rules, err := database.ListRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestProfileGroups_SingleGroup(t *testing.T) {
	database := testDB(t)
	seed(t, database, scenarioGroups)

	var out bytes.Buffer
	summary, err := profileGroups(context.Background(), database, profileOptions{
		group:        "1",
		entropyLimit: 1.0,
		workers:      1,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.groups)
	assert.NotContains(t, out.String(), "group 2")
}

func TestProfileGroups_UnknownGroup(t *testing.T) {
	database := testDB(t)
	seed(t, database, scenarioGroups)

	_, err := profileGroups(context.Background(), database, profileOptions{group: "9", workers: 1}, &bytes.Buffer{})
	assert.ErrorIs(t, err, db.ErrGroupNotFound)
}

func TestProfileGroups_EmptyStore(t *testing.T) {
	database := testDB(t)

	var out bytes.Buffer
	summary, err := profileGroups(context.Background(), database, profileOptions{workers: 1}, &out)
	require.NoError(t, err)

	assert.Zero(t, summary.groups)
	assert.Contains(t, out.String(), "No domain groups stored")
}

func TestProfileGroups_Cancelled(t *testing.T) {
	database := testDB(t)
	seed(t, database, scenarioGroups)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := profileGroups(ctx, database, profileOptions{entropyLimit: 1.0, workers: 1}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)

	rules, err := database.ListRules()
	require.NoError(t, err)
	assert.Empty(t, rules)
}

type failingWriteStore struct {
	groups map[string][]string
}

func (s failingWriteStore) ReadDomains() (map[string][]string, error) { return s.groups, nil }
func (s failingWriteStore) WriteRules(map[string]string) error       { return db.ErrPersistence }
func (s failingWriteStore) SetMeta(string, string) error             { return nil }

func TestProfileGroups_WriteFailure(t *testing.T) {
	store := failingWriteStore{groups: scenarioGroups}

	_, err := profileGroups(context.Background(), store, profileOptions{entropyLimit: 1.0, workers: 1}, &bytes.Buffer{})
	assert.ErrorIs(t, err, db.ErrPersistence)
}

type failingMetaStore struct {
	*db.DB
}

func (failingMetaStore) SetMeta(string, string) error { return db.ErrPersistence }

func TestProfileGroups_MetaFailureIsLogged(t *testing.T) {
	logDir := t.TempDir()
	require.NoError(t, log.InitWithConsole(logDir, &bytes.Buffer{}))
	t.Cleanup(func() { _ = log.Close() })

	database := testDB(t)
	seed(t, database, scenarioGroups)

	summary, err := profileGroups(context.Background(), failingMetaStore{database},
		profileOptions{entropyLimit: 1.0, workers: 1}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.rulesWritten)

	data, err := os.ReadFile(filepath.Join(logDir, log.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "record last profile run:")
}
