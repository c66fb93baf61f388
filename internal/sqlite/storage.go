package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNotFound is returned by [Storage.Get] when no snapshot has the requested name.
	ErrNotFound = errors.New("snapshot not found")
)

const (
	memory = ":memory:"
)

// Storage is a persistent snapshot storage backed by SQLite.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - URI: ":memory:" (in-memory database)
//   - Conns: 1
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.URI(memory)
	cfg.Conns(1)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Put stores a snapshot, replacing any previous snapshot with the same name.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Put(snapshot Snapshot) error {
	_, err := s.db.Exec(
		`
		insert into snapshot (
			name,
			element_size,
			size,
			data,
			saved_at
		) values (
			:name,
			:element_size,
			:size,
			:data,
			:saved_at
		)
		on conflict (name) do update set
			element_size = excluded.element_size,
			size = excluded.size,
			data = excluded.data,
			saved_at = excluded.saved_at
		`,
		sql.Named("name", snapshot.Name),
		sql.Named("element_size", snapshot.ElementSize),
		sql.Named("size", snapshot.Size),
		sql.Named("data", nonNil(snapshot.Data)),
		sql.Named("saved_at", toTimestamp(time.Now())),
	)
	return closed(err)
}

// Get returns the snapshot with the given name.
//
// Returns [ErrNotFound] if there is none and [ErrClosed] if the storage has been closed.
func (s *Storage) Get(name string) (*Snapshot, error) {
	var (
		snapshot Snapshot
		savedAt  int64
	)
	err := s.db.QueryRow(
		`
		select name, element_size, size, data, saved_at
		from snapshot
		where name = :name
		`,
		sql.Named("name", name),
	).Scan(
		&snapshot.Name,
		&snapshot.ElementSize,
		&snapshot.Size,
		&snapshot.Data,
		&savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, closed(err)
	}

	snapshot.SavedAt = fromTimestamp(savedAt)

	return &snapshot, nil
}

// Delete permanently removes the snapshots with the given names and returns how many existed.
func (s *Storage) Delete(names ...string) (int, error) {
	res, err := s.db.Exec(
		`
		delete from snapshot
		where 
			name in (
				select value from json_each(:names)
			)
		`,
		sql.Named("names", jsonNames(names)),
	)
	if err != nil {
		return 0, closed(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// Names returns the names of all stored snapshots in ascending order.
func (s *Storage) Names() ([]string, error) {
	rows, err := s.db.Query(`select name from snapshot order by name asc`)
	if err != nil {
		return nil, closed(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return names, nil
}

// Stats returns current storage statistics.
func (s *Storage) Stats() (*Stats, error) {
	var stats Stats
	err := s.db.QueryRow(
		`
		select 
			coalesce(count(*), 0) as snapshots,
			coalesce(sum(size), 0) as items,
			coalesce(sum(length(data)), 0) as bytes
		from
			snapshot
		`,
	).Scan(
		&stats.Snapshots,
		&stats.Items,
		&stats.Bytes,
	)
	if err != nil {
		return nil, closed(err)
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Snapshot is a stored, encoded buffer.
type Snapshot struct {
	// Name is the unique name of this snapshot.
	Name string
	// ElementSize is the element size of the buffer the snapshot was taken from.
	ElementSize int
	// Size is the number of elements in the snapshot.
	Size int
	// Data is the encoded buffer content.
	Data []byte
	// SavedAt is the time when the snapshot was last written. Ignored by [Storage.Put].
	SavedAt time.Time
}

// Stats represents statistics about the storage.
type Stats struct {
	// Snapshots is the total number of snapshots in storage.
	Snapshots int
	// Items is the total number of elements across all snapshots.
	Items int
	// Bytes is the total size of the encoded data across all snapshots.
	Bytes int
}

func open(cfg *Config) (*sql.DB, error) {
	path, rawQuery, _ := strings.Cut(cfg.uri, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("parse query: %w", err)
	}

	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	if path == memory {
		path = uuid.NewString()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_sync", "normal")
		params.Add("_cache_size", "-20000") // 20mb
	}
	for k, v := range query {
		if len(v) != 0 {
			params.Set(k, v[0])
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if params.Get("mode") == "memory" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.conns)
		db.SetMaxIdleConns(cfg.conns)
	}

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists snapshot (
			name         text primary key,
			element_size int not null,
			size         int not null,
			data         blob not null,
			saved_at     int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

func closed(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	return err
}

// An empty buffer encodes to nil, which the not null constraint would reject.
func nonNil(data []byte) []byte {
	if data == nil {
		return []byte{}
	}
	return data
}

func jsonNames(names []string) string {
	jsonNames, _ := json.Marshal(names)
	return string(jsonNames)
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
