// SPDX-License-Identifier: MIT

package web

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS term_counts (
	term       TEXT PRIMARY KEY,
	count      INTEGER NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// SQLiteCache persists term counts in a single SQLite table.
// Safe for concurrent use; the database runs in WAL mode.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating term_counts: %w", err)
	}

	return &SQLiteCache{db: db, path: path}, nil
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *SQLiteCache) Path() string {
	return c.path
}

// Get returns the cached count for term and whether it was present.
func (c *SQLiteCache) Get(ctx context.Context, term string) (int64, bool, error) {
	var n int64
	err := c.db.QueryRowContext(ctx, `SELECT count FROM term_counts WHERE term = ?`, term).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading %q: %w", term, err)
	}

	return n, true, nil
}

// Put stores or replaces the count for term.
func (c *SQLiteCache) Put(ctx context.Context, term string, n int64) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO term_counts (term, count, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(term) DO UPDATE SET count = excluded.count, fetched_at = excluded.fetched_at`,
		term, n, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing %q: %w", term, err)
	}

	return nil
}

// Len returns the number of cached terms.
func (c *SQLiteCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM term_counts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting terms: %w", err)
	}

	return n, nil
}

// Import loads a plain-text cache where each line is "<term> <count>" and
// the count follows the last space. It returns the number of rows written.
func (c *SQLiteCache) Import(ctx context.Context, r io.Reader) (int, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO term_counts (term, count, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(term) DO UPDATE SET count = excluded.count`)
	if err != nil {
		return 0, fmt.Errorf("preparing import: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	sc := bufio.NewScanner(r)
	rows, line := 0, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		i := strings.LastIndexByte(text, ' ')
		if i <= 0 {
			return 0, fmt.Errorf("line %d: want \"<term> <count>\"", line)
		}
		n, err := strconv.ParseInt(text[i+1:], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: count: %w", line, err)
		}
		if _, err = stmt.ExecContext(ctx, strings.TrimSpace(text[:i]), n, now); err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}

	return rows, nil
}

// CachedCounter answers from a SQLiteCache and falls back to another
// Counter on a miss, storing what it fetched.
type CachedCounter struct {
	inner Counter
	cache *SQLiteCache
	log   zerolog.Logger
}

var _ Counter = (*CachedCounter)(nil)

// NewCachedCounter layers cache in front of inner. Cache write failures
// are logged to log and do not fail the count.
func NewCachedCounter(inner Counter, cache *SQLiteCache, log zerolog.Logger) *CachedCounter {
	return &CachedCounter{inner: inner, cache: cache, log: log}
}

// Count implements Counter. Terms are keyed without surrounding spaces.
func (c *CachedCounter) Count(ctx context.Context, term string) (int64, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return 0, ErrEmptyTerm
	}

	n, ok, err := c.cache.Get(ctx, term)
	if err != nil {
		return 0, err
	}
	if ok {
		return n, nil
	}

	n, err = c.inner.Count(ctx, term)
	if err != nil {
		return 0, err
	}
	if err = c.cache.Put(ctx, term, n); err != nil {
		c.log.Warn().Err(err).Str("term", term).Msg("term count not cached")
	}

	return n, nil
}
