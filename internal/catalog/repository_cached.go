package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// CachedRepository serves the catalog from a flat cache file while it is
// fresh, re-reading the wrapped source past the TTL. When the source is
// disabled or fails, it degrades to the static mock file. Concurrent
// refreshes are tolerated: rewriting the cache is idempotent.
type CachedRepository struct {
	source    Repository
	disabled  bool
	ttl       time.Duration
	cachePath string
	mockPath  string
	log       *zap.Logger
	now       func() time.Time
}

func NewCachedRepository(source Repository, disabled bool, ttl time.Duration, cachePath, mockPath string, log *zap.Logger) *CachedRepository {
	return &CachedRepository{
		source:    source,
		disabled:  disabled,
		ttl:       ttl,
		cachePath: cachePath,
		mockPath:  mockPath,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the time source (tests).
func (r *CachedRepository) WithClock(now func() time.Time) *CachedRepository {
	r.now = now
	return r
}

func (r *CachedRepository) List(ctx context.Context) ([]ProductRecord, error) {
	if records, ok := r.readCache(); ok {
		return records, nil
	}

	if r.disabled {
		return r.readStatic()
	}

	records, err := r.source.List(ctx)
	if err != nil {
		r.log.Warn("catalog source failed, using static fallback", zap.Error(err))
		return r.readStatic()
	}

	r.writeCache(records)
	return records, nil
}

// readCache returns the cached catalog when the cache file is younger than
// the TTL and still parses as valid records.
func (r *CachedRepository) readCache() ([]ProductRecord, bool) {
	stat, err := os.Stat(r.cachePath)
	if err != nil {
		return nil, false
	}
	if r.now().Sub(stat.ModTime()) >= r.ttl {
		return nil, false
	}
	records, err := readRecordsFile(r.cachePath)
	if err != nil {
		r.log.Warn("ignoring unreadable catalog cache", zap.String("path", r.cachePath), zap.Error(err))
		return nil, false
	}
	return records, true
}

func (r *CachedRepository) readStatic() ([]ProductRecord, error) {
	records, err := readRecordsFile(r.mockPath)
	if err != nil {
		return nil, fmt.Errorf("static catalog: %w", err)
	}
	return records, nil
}

func (r *CachedRepository) writeCache(records []ProductRecord) {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.cachePath), 0o755); err != nil {
		r.log.Warn("cannot create cache dir", zap.Error(err))
		return
	}
	if err := os.WriteFile(r.cachePath, b, 0o644); err != nil {
		r.log.Warn("cannot write catalog cache", zap.String("path", r.cachePath), zap.Error(err))
	}
}

func readRecordsFile(path string) ([]ProductRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []ProductRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", path, i, err)
		}
	}
	return records, nil
}
