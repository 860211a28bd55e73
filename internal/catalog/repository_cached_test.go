package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRepo struct {
	calls   int
	records []ProductRecord
	err     error
}

func (r *countingRepo) List(ctx context.Context) ([]ProductRecord, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.records, nil
}

func sample(asin string) ProductRecord {
	return ProductRecord{
		Label:    "Sample",
		ASIN:     asin,
		Status:   StatusActive,
		Audience: AudienceAll,
		AgeMax:   120,
	}
}

func writeRecords(t *testing.T, path string, records []ProductRecord) {
	t.Helper()
	b, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func tempPaths(t *testing.T) (cachePath, mockPath string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "products-cache.json"), filepath.Join(dir, "products.mock.json")
}

func TestCachedRepository_ServesFreshCache(t *testing.T) {
	cachePath, mockPath := tempPaths(t)
	writeRecords(t, cachePath, []ProductRecord{sample("B000CACHE1")})

	source := &countingRepo{records: []ProductRecord{sample("B000LIVE01")}}
	repo := NewCachedRepository(source, false, time.Hour, cachePath, mockPath, zap.NewNop())

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B000CACHE1", records[0].ASIN)
	assert.Equal(t, 0, source.calls)
}

func TestCachedRepository_ExpiredCacheRefreshesAndRewrites(t *testing.T) {
	cachePath, mockPath := tempPaths(t)
	writeRecords(t, cachePath, []ProductRecord{sample("B000STALE1")})

	source := &countingRepo{records: []ProductRecord{sample("B000LIVE01")}}
	repo := NewCachedRepository(source, false, time.Hour, cachePath, mockPath, zap.NewNop())
	// push "now" past the TTL relative to the cache file's mtime
	repo.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B000LIVE01", records[0].ASIN)
	assert.Equal(t, 1, source.calls)

	// the cache file now holds the fresh copy
	rewritten, err := readRecordsFile(cachePath)
	require.NoError(t, err)
	require.Len(t, rewritten, 1)
	assert.Equal(t, "B000LIVE01", rewritten[0].ASIN)
}

func TestCachedRepository_DisabledUsesStaticMock(t *testing.T) {
	cachePath, mockPath := tempPaths(t)
	writeRecords(t, mockPath, []ProductRecord{sample("B000MOCK01")})

	source := &countingRepo{records: []ProductRecord{sample("B000LIVE01")}}
	repo := NewCachedRepository(source, true, time.Hour, cachePath, mockPath, zap.NewNop())

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B000MOCK01", records[0].ASIN)
	assert.Equal(t, 0, source.calls)
}

func TestCachedRepository_SourceFailureFallsBackToMock(t *testing.T) {
	cachePath, mockPath := tempPaths(t)
	writeRecords(t, mockPath, []ProductRecord{sample("B000MOCK01")})

	source := &countingRepo{err: errors.New("sheets down")}
	repo := NewCachedRepository(source, false, time.Hour, cachePath, mockPath, zap.NewNop())

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B000MOCK01", records[0].ASIN)
	assert.Equal(t, 1, source.calls)
}

func TestCachedRepository_EverythingMissingErrors(t *testing.T) {
	cachePath, mockPath := tempPaths(t)

	repo := NewCachedRepository(&countingRepo{err: errors.New("down")}, false, time.Hour, cachePath, mockPath, zap.NewNop())
	_, err := repo.List(context.Background())
	assert.Error(t, err)
}

func TestCachedRepository_CorruptCacheIgnored(t *testing.T) {
	cachePath, mockPath := tempPaths(t)
	require.NoError(t, os.WriteFile(cachePath, []byte("{not json"), 0o644))

	source := &countingRepo{records: []ProductRecord{sample("B000LIVE01")}}
	repo := NewCachedRepository(source, false, time.Hour, cachePath, mockPath, zap.NewNop())

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B000LIVE01", records[0].ASIN)
}
