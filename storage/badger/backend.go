package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/sift/storage"
)

// Backend owns the BadgerDB instance behind the repositories.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// BackendOption configures OpenBackend.
type BackendOption func(*backendOptions)

type backendOptions struct {
	logger *slog.Logger
}

// WithBackendLogger routes badger's internal logging to logger.
// Default is slog.Default().
func WithBackendLogger(logger *slog.Logger) BackendOption {
	return func(o *backendOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// badgerLog satisfies badger.Logger by forwarding to slog at the matching level.
type badgerLog struct {
	logger *slog.Logger
}

var _ badger.Logger = badgerLog{}

func (l badgerLog) emit(level slog.Level, format string, args []any) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	// badger terminates most of its messages with a newline.
	l.logger.Log(context.Background(), level, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

func (l badgerLog) Errorf(format string, args ...any)   { l.emit(slog.LevelError, format, args) }
func (l badgerLog) Warningf(format string, args ...any) { l.emit(slog.LevelWarn, format, args) }
func (l badgerLog) Infof(format string, args ...any)    { l.emit(slog.LevelInfo, format, args) }
func (l badgerLog) Debugf(format string, args ...any)   { l.emit(slog.LevelDebug, format, args) }

// OpenBackend opens the database stored under dir, creating the directory
// when it is missing. With inMemory set dir is ignored and nothing touches disk.
func OpenBackend(dir string, inMemory bool, opts ...BackendOption) (*Backend, error) {
	o := backendOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("component", "badger")

	path := ""
	if !inMemory {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		path = dir
	}
	bopts := badger.DefaultOptions(path).
		WithInMemory(inMemory).
		WithLogger(badgerLog{logger: logger}).
		WithCompression(options.None)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening guild store: %w", err)
	}
	return &Backend{db: db, logger: logger}, nil
}

// ensureDir creates dir if needed. An existing non-directory at dir is
// reported as an error.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("preparing storage directory: %w", err)
	}
	return nil
}

// updateAttempts bounds retries of a write transaction that lost a
// conflict to a concurrent writer.
const updateAttempts = 3

// Close closes the database. Closing twice is a no-op.
func (b *Backend) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// View runs fn in a read-only transaction.
func (b *Backend) View(ctx context.Context, fn func(tx *badger.Txn) error) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.db.View(fn)
}

// Update runs fn in a read-write transaction and commits it when fn
// succeeds. A transaction that conflicts with a concurrent writer is
// re-run, so fn must read what it depends on inside the transaction.
func (b *Backend) Update(ctx context.Context, fn func(tx *badger.Txn) error) error {
	var err error
	for attempt := 1; attempt <= updateAttempts; attempt++ {
		if err = b.ready(ctx); err != nil {
			return err
		}
		err = b.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		b.logger.Debug("transaction conflict, retrying", "attempt", attempt)
	}
	return err
}

func (b *Backend) ready(ctx context.Context) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return ctx.Err()
}
