package common_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrarfp/gotender/cmd/common"
	"github.com/orchestrarfp/gotender/internal/dates"
)

func writeTestConfig(t *testing.T) (cfgPath, cachePath string) {
	t.Helper()

	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "config.yaml")
	cachePath = filepath.Join(dir, "tenders.json")

	yaml := "cache:\n  path: " + cachePath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))

	return cfgPath, cachePath
}

func TestNewPipelinePrimesEmptyCacheAtStartup(t *testing.T) {
	cfgPath, cachePath := writeTestConfig(t)
	common.Configure(cfgPath, false)

	deps, err := common.NewCommandDeps()
	require.NoError(t, err)

	pipeline := common.NewPipeline(deps)

	records := pipeline.Store.Load()
	require.NotEmpty(t, records, "first startup must never leave the cache hard-empty")

	for _, record := range records {
		assert.True(t, dates.WithinWindow(record.Deadline, time.Now(), 90),
			"primed deadline %q outside window", record.Deadline)
	}

	// The snapshot was written to the configured file, not just memory.
	_, statErr := os.Stat(cachePath)
	assert.NoError(t, statErr)
}

func TestNewPipelineLeavesExistingCacheAlone(t *testing.T) {
	cfgPath, cachePath := writeTestConfig(t)
	snapshot := `[{"title":"existing","number":"T-1","buyer":"b","deadline":"","document_link":"","source":"s","score":5}]`
	require.NoError(t, os.WriteFile(cachePath, []byte(snapshot), 0o600))

	common.Configure(cfgPath, false)

	deps, err := common.NewCommandDeps()
	require.NoError(t, err)

	pipeline := common.NewPipeline(deps)

	records := pipeline.Store.Load()
	require.Len(t, records, 1)
	assert.Equal(t, "existing", records[0].Title)
}
