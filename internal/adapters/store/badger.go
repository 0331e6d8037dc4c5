// Package store provides durable client-local key/value storage for the
// auth token and the preferred language.
package store

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dkeye/VoiceClient/internal/core"
	"github.com/rs/zerolog"
)

const keyPrefix = "voiceclient/"

// Badger is a LocalStore backed by BadgerDB.
type Badger struct {
	db     *badger.DB
	logger zerolog.Logger
}

type BadgerOptions struct {
	// Dir holds the data files. Required unless InMemory is set.
	Dir string
	// InMemory keeps everything in memory. Used by tests.
	InMemory bool
	Logger   zerolog.Logger
}

func NewBadger(opts BadgerOptions) (*Badger, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("store: data dir is required")
	}
	logger := opts.Logger.With().Str("module", "store").Logger()
	dbOpts := badger.DefaultOptions(opts.Dir).WithLogger(badgerLogger{logger})
	if opts.InMemory {
		dbOpts = dbOpts.WithInMemory(true).WithDir("").WithValueDir("")
	}
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", opts.Dir, err)
	}
	logger.Info().Str("dir", opts.Dir).Bool("in_memory", opts.InMemory).Msg("local store opened")
	return &Badger{db: db, logger: logger}, nil
}

func (b *Badger) Get(_ context.Context, key string) (string, error) {
	var val []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (b *Badger) Set(_ context.Context, key, value string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), []byte(value))
	})
}

func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + key))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (b *Badger) Close() error {
	return b.db.Close()
}

// badgerLogger routes badger's warnings and errors into zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func (g badgerLogger) Errorf(f string, v ...interface{})   { g.l.Error().Msgf(f, v...) }
func (g badgerLogger) Warningf(f string, v ...interface{}) { g.l.Warn().Msgf(f, v...) }
func (badgerLogger) Infof(string, ...interface{})          {}
func (badgerLogger) Debugf(string, ...interface{})         {}

var _ core.LocalStore = (*Badger)(nil)
