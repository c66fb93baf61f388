// Package snapshot persists named copies of buffers in SQLite.
//
// Typed buffers are stored through a [flat.Codec]; erased buffers are stored as their raw bytes.
// Loading appends to the destination buffer, so a snapshot can be merged into existing content.
package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/teenjuna/flat"
	"github.com/teenjuna/flat/internal/sqlite"
)

var (
	// ErrNotFound is returned when no snapshot has the requested name.
	ErrNotFound = sqlite.ErrNotFound
	// ErrClosed is returned by every Store method after [Store.Close].
	ErrClosed = sqlite.ErrClosed
	// ErrElementSize is returned when a snapshot is loaded into a buffer of a different element
	// size than the one it was saved from.
	ErrElementSize = errors.New("snapshot: element size mismatch")
)

// Store is a set of named snapshots. It is safe for concurrent use.
type Store struct {
	storage *sqlite.Storage
	logger  log.Logger
}

type Option = func(*config)

type config struct {
	file   *FileConfig
	logger log.Logger
}

// WithFile persists the store in the given file. Without it the store lives in memory.
func WithFile(file *FileConfig) Option {
	if file == nil {
		panic("file can't be nil")
	}
	return func(c *config) {
		c.file = file
	}
}

func WithLogger(logger log.Logger) Option {
	if logger == nil {
		panic("logger can't be nil")
	}
	return func(c *config) {
		c.logger = logger
	}
}

func Open(options ...Option) (*Store, error) {
	cfg := config{
		logger: log.NewNopLogger(),
	}
	for _, option := range options {
		option(&cfg)
	}

	storage, err := sqlite.New(sqlite.WithURI(cfg.file.uri()))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	logger := log.With(cfg.logger, "component", "snapshot")
	level.Debug(logger).Log("msg", "store opened", "uri", cfg.file.uri())

	return &Store{
		storage: storage,
		logger:  logger,
	}, nil
}

// Save encodes the items of buffer with codec and stores them under name, replacing any previous
// snapshot with that name.
func Save[Item any](s *Store, name string, buffer *flat.Buffer[Item], codec flat.Codec[Item]) error {
	checkName(name)

	data, err := buffer.Encode(codec)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}

	return s.put(sqlite.Snapshot{
		Name:        name,
		ElementSize: buffer.ElementSize(),
		Size:        buffer.Len(),
		Data:        data,
	})
}

// Load decodes the snapshot stored under name with codec and appends its items to buffer. On
// failure buffer is untouched.
func Load[Item any](s *Store, name string, buffer *flat.Buffer[Item], codec flat.Codec[Item]) error {
	checkName(name)

	snapshot, err := s.get(name, buffer.ElementSize())
	if err != nil {
		return err
	}

	if err := buffer.Decode(codec, snapshot.Data); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}

	level.Debug(s.logger).Log("msg", "snapshot loaded", "name", name, "items", snapshot.Size)

	return nil
}

// SaveRaw stores the bytes of raw under name, replacing any previous snapshot with that name.
func (s *Store) SaveRaw(name string, raw *flat.Raw) error {
	checkName(name)

	return s.put(sqlite.Snapshot{
		Name:        name,
		ElementSize: raw.ElementSize(),
		Size:        raw.Len(),
		Data:        raw.Bytes(),
	})
}

// LoadRaw appends the elements of the snapshot stored under name to raw. On failure raw is
// untouched.
func (s *Store) LoadRaw(name string, raw *flat.Raw) error {
	checkName(name)

	snapshot, err := s.get(name, raw.ElementSize())
	if err != nil {
		return err
	}
	if len(snapshot.Data) != snapshot.Size*snapshot.ElementSize {
		return fmt.Errorf(
			"load %q: %d bytes can't hold %d elements of %d bytes",
			name, len(snapshot.Data), snapshot.Size, snapshot.ElementSize,
		)
	}

	n := raw.Len()
	if err := raw.Grow(snapshot.Size); err != nil {
		return fmt.Errorf("load %q: %w", name, err)
	}
	copy(raw.Bytes()[raw.Offset(n):], snapshot.Data)

	level.Debug(s.logger).Log("msg", "snapshot loaded", "name", name, "items", snapshot.Size)

	return nil
}

// Delete removes the snapshots with the given names. Missing names are ignored.
func (s *Store) Delete(names ...string) error {
	n, err := s.storage.Delete(names...)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	level.Debug(s.logger).Log("msg", "snapshots deleted", "requested", len(names), "deleted", n)

	return nil
}

// Names returns the names of all snapshots in ascending order.
func (s *Store) Names() ([]string, error) {
	names, err := s.storage.Names()
	if err != nil {
		return nil, fmt.Errorf("names: %w", err)
	}
	return names, nil
}

// Stats describes the content of a [Store].
type Stats struct {
	// Snapshots is the number of stored snapshots.
	Snapshots int
	// Items is the number of elements across all snapshots.
	Items int
	// Bytes is the size of the encoded data across all snapshots.
	Bytes int
}

func (s *Store) Stats() (*Stats, error) {
	stats, err := s.storage.Stats()
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &Stats{
		Snapshots: stats.Snapshots,
		Items:     stats.Items,
		Bytes:     stats.Bytes,
	}, nil
}

func (s *Store) Close() error {
	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	level.Debug(s.logger).Log("msg", "store closed")
	return nil
}

func (s *Store) put(snapshot sqlite.Snapshot) error {
	if err := s.storage.Put(snapshot); err != nil {
		return fmt.Errorf("save %q: %w", snapshot.Name, err)
	}

	level.Debug(s.logger).Log(
		"msg", "snapshot saved",
		"name", snapshot.Name,
		"items", snapshot.Size,
		"bytes", len(snapshot.Data),
	)

	return nil
}

func (s *Store) get(name string, elementSize int) (*sqlite.Snapshot, error) {
	snapshot, err := s.storage.Get(name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if snapshot.ElementSize != elementSize {
		return nil, fmt.Errorf(
			"load %q: saved %d, got %d: %w",
			name, snapshot.ElementSize, elementSize, ErrElementSize,
		)
	}
	return snapshot, nil
}

func checkName(name string) {
	if strings.TrimSpace(name) == "" {
		panic("name can't be blank")
	}
}
