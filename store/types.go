package store

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	bolt "go.etcd.io/bbolt"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/tree"
)

// Options configures Open.
type Options struct {
	// CacheSize is the number of decoded documents kept in memory. Zero
	// selects DefaultCacheSize; a negative value disables the cache.
	CacheSize int
	// Timeout bounds the wait for the database file lock. Zero waits forever.
	Timeout  time.Duration
	ReadOnly bool
}

type cacheKey struct {
	style string
	name  string
}

// Store is a local database of records. Records are grouped in one bucket
// per style and keyed by record name; content is kept as compact JSON.
// A Store is safe for concurrent use.
type Store struct {
	db       *bolt.DB
	registry *recmodel.Registry
	// cached documents are never mutated; LoadModel only reads them
	cache *lru.Cache[cacheKey, *tree.Dict]
}
