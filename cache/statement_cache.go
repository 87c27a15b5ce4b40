// Package cache holds prepared statements behind an LRU so repeated command
// executions on the database/sql path skip re-preparing.
package cache

import (
	"context"
	"database/sql"

	lru "github.com/hashicorp/golang-lru/v2"
)

// StatementCache is an LRU of prepared statements keyed by statement
// fingerprint. Evicted statements are closed.
type StatementCache struct {
	cache *lru.Cache[uint64, *sql.Stmt]
}

// NewStatementCache creates a cache holding up to size statements.
func NewStatementCache(size int) *StatementCache {
	cache, _ := lru.NewWithEvict(size, func(key uint64, stmt *sql.Stmt) {
		stmt.Close()
	})
	return &StatementCache{cache: cache}
}

// GetOrPrepare returns the cached statement for key, preparing and caching
// it on a miss.
func (s *StatementCache) GetOrPrepare(ctx context.Context, key uint64, db *sql.DB, query string) (*sql.Stmt, error) {
	if stmt, ok := s.cache.Get(key); ok {
		return stmt, nil
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, stmt)
	return stmt, nil
}

// Close evicts and closes every cached statement.
func (s *StatementCache) Close() error {
	s.cache.Purge()
	return nil
}
