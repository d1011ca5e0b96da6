// Package store presents one interface for business and lead data access
// regardless of which SQL backend (if any) is reachable. Reads degrade to a
// bundled sample dataset when the backend fails; writes report explicit
// errors and are never faked. Nothing in this package panics or returns an
// unhandled backend exception to its caller.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/dumpsterly/dumpsterly-api/config"
	"github.com/dumpsterly/dumpsterly-api/pkg/cache"
	"github.com/dumpsterly/dumpsterly-api/pkg/domain"
	"github.com/dumpsterly/dumpsterly-api/pkg/logger"
	"github.com/dumpsterly/dumpsterly-api/pkg/models"
)

var (
	_ domain.BusinessRepository = (*Store)(nil)
	_ domain.LeadRepository     = (*Store)(nil)
	_ domain.CacheRepository    = (*cache.Client)(nil)
)

// Backend identifies which database service the store talks to
type Backend string

const (
	BackendNeon     Backend = "neon"
	BackendSupabase Backend = "supabase"
	BackendNone     Backend = "none"
)

// DetectBackend resolves the active backend from configuration. The decision
// is made once at construction and never re-evaluated: an explicit provider
// flag wins, then a Neon host pattern in the connection URL, then the
// presence of Supabase configuration. With neither configured every read is
// served from the sample dataset.
func DetectBackend(cfg *config.Config) Backend {
	switch strings.ToLower(cfg.DBProvider) {
	case "neon":
		return BackendNeon
	case "supabase":
		return BackendSupabase
	}

	if cfg.DatabaseURL != "" && strings.Contains(cfg.DatabaseURL, "neon.tech") {
		return BackendNeon
	}
	if cfg.SupabaseDBURL != "" || (cfg.SupabaseURL != "" && cfg.SupabaseAnonKey != "") {
		return BackendSupabase
	}
	return BackendNone
}

// QueryMetrics receives store-level query and cache instrumentation
type QueryMetrics interface {
	RecordDBQuery(operation string, duration time.Duration)
	RecordCacheHit(cacheType string)
	RecordCacheMiss(cacheType string)
}

// Store is the data access façade. It is safe for concurrent use: the
// backend decision is immutable after construction and the in-memory lead
// buffer is mutex-guarded.
type Store struct {
	backend Backend
	db      *sql.DB
	cache   *cache.Client
	log     logger.Logger
	builder sq.StatementBuilderType
	mem     *memoryLeads
	metrics QueryMetrics
	now     func() time.Time
}

// New creates a store from configuration. Connection problems do not fail
// construction: the store is still usable and degrades per operation.
func New(cfg *config.Config, cacheClient *cache.Client, log logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}

	backend := DetectBackend(cfg)

	var db *sql.DB
	var err error
	switch backend {
	case BackendNeon:
		db, err = sql.Open("pgx", cfg.DatabaseURL)
	case BackendSupabase:
		url := cfg.SupabaseDBURL
		if url == "" {
			url = cfg.DatabaseURL
		}
		db, err = sql.Open("postgres", url)
	}
	if err != nil {
		log.Error("failed opening database, falling back to sample data", "backend", backend, "error", err)
		backend = BackendNone
		db = nil
	}

	if db != nil {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(10 * time.Minute)
	}

	log.Info("store initialized", "backend", backend)

	return &Store{
		backend: backend,
		db:      db,
		cache:   cacheClient,
		log:     log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		mem:     newMemoryLeads(),
		now:     time.Now,
	}
}

// NewWithDB creates a store over an already-open database handle. Used by
// tests to inject a mock connection.
func NewWithDB(backend Backend, db *sql.DB, cacheClient *cache.Client, log logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	return &Store{
		backend: backend,
		db:      db,
		cache:   cacheClient,
		log:     log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		mem:     newMemoryLeads(),
		now:     time.Now,
	}
}

// SetMetrics attaches query and cache instrumentation. Optional: the store
// works without it.
func (s *Store) SetMetrics(m QueryMetrics) {
	s.metrics = m
}

func (s *Store) recordQuery(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordDBQuery(operation, time.Since(start))
	}
}

func (s *Store) recordCacheLookup(cacheType string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit(cacheType)
	} else {
		s.metrics.RecordCacheMiss(cacheType)
	}
}

// Backend returns the backend selected at construction
func (s *Store) Backend() Backend {
	return s.backend
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// TestConnection probes the active backend. Operational tooling only; page
// rendering never depends on it.
func (s *Store) TestConnection(ctx context.Context) models.ConnectionStatus {
	if s.backend == BackendNone || s.db == nil {
		return models.ConnectionStatus{
			Success: false,
			Type:    string(BackendNone),
			Error:   "Database not configured",
		}
	}

	var now time.Time
	if err := s.db.QueryRowContext(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return models.ConnectionStatus{
			Success: false,
			Type:    string(s.backend),
			Error:   err.Error(),
		}
	}

	return models.ConnectionStatus{
		Success: true,
		Type:    string(s.backend),
		Time:    now.Format(time.RFC3339),
	}
}

// invalidateBusinessCache drops cached business search results after a write
func (s *Store) invalidateBusinessCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "businesses:*"); err != nil {
		s.log.Warn("failed invalidating business cache", "error", err)
	}
}

func marshalJSON(v any) []byte {
	if v == nil {
		return []byte("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}
