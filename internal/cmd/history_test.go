package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/combiner/internal/history"
)

func TestRun_RecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	_, configPath := newProject(t, twoDirConfig+"history_db: "+dbPath+"\n", map[string]string{
		"src/a.txt":   "alpha",
		"src/bad.bin": string([]byte{0xff, 0xfe}),
	})
	output := filepath.Join(t.TempDir(), "combined.txt")

	for i := 0; i < 2; i++ {
		_, _, err := execute(t, "", "run", "--config", configPath, "-o", output)
		require.NoError(t, err)
	}

	store, err := history.NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 1, runs[0].Included)
	assert.Equal(t, 1, runs[0].Skipped)
	assert.Equal(t, output, runs[0].OutputPath)
	assert.NotEqual(t, runs[0].RunID, runs[1].RunID)

	stdout, _, err := execute(t, "", "history", "--config", configPath, "--skipped")
	require.NoError(t, err)
	assert.Contains(t, stdout, "=== Run History ===")
	assert.Contains(t, stdout, runs[0].RunID)
	assert.Contains(t, stdout, "Skipped in "+runs[0].RunID)
	assert.Contains(t, stdout, "bad.bin (not_text:")

	stdout, _, err = execute(t, "", "history", "--config", configPath, "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, runs[0].RunID)
	assert.NotContains(t, stdout, runs[1].RunID)
}

func TestHistory_RequiresHistoryDB(t *testing.T) {
	_, configPath := newProject(t, twoDirConfig, nil)

	_, _, err := execute(t, "", "history", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_db is not set")
}

func TestFormatHistoryTable_Empty(t *testing.T) {
	assert.Contains(t, formatHistoryTable(nil), "No runs recorded")
}
