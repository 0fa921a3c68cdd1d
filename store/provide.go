package store

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/untillpro/goutils/logger"
	bolt "go.etcd.io/bbolt"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/tree"
)

// Open opens (creating when allowed) the database at path. Records are
// materialized through reg; a nil reg selects recmodel.DefaultRegistry.
func Open(path string, reg *recmodel.Registry, opts Options) (*Store, error) {
	if reg == nil {
		reg = recmodel.DefaultRegistry
	}
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: opts.Timeout, ReadOnly: opts.ReadOnly})
	if err != nil {
		logger.Error(fmt.Sprintf("store: open %s: %v", path, err))
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	s := &Store{db: db, registry: reg}
	size := opts.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}
	if size > 0 {
		if s.cache, err = lru.New[cacheKey, *tree.Dict](size); err != nil {
			// notest
			_ = db.Close()
			return nil, err
		}
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("store: opened %s (cache %d, read-only %v)", path, size, opts.ReadOnly))
	}
	return s, nil
}
