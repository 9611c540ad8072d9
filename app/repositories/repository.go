package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"postboard/app/models"

	"github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgerStore implements PostStore on an embedded Badger database. Each post
// is one BSON document stored under post:<id>; comments live inside it.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

const restoreMaxPendingWrites = 16

// BadgerOptions configures OpenBadger.
type BadgerOptions struct {
	Path     string
	InMemory bool
	Logger   *slog.Logger
}

// OpenBadger opens (or creates) a Badger database and wraps it in a store
// that closes the database on Close.
func OpenBadger(o BadgerOptions) (*BadgerStore, error) {
	opts := badger.DefaultOptions(o.Path)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if o.Logger != nil {
		opts = opts.WithLogger(badgerLogger{o.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", o.Path, err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an already opened database. The caller keeps
// ownership of db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close(_ context.Context) error {
	if !s.ownsDB || s.db.IsClosed() {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database can serve reads.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return s.db.View(func(txn *badger.Txn) error { return nil })
}

// Clear drops every document.
func (s *BadgerStore) Clear() error {
	return s.db.DropAll()
}

// Backup writes a full backup of the database to w and returns the version
// it is consistent at.
func (s *BadgerStore) Backup(w io.Writer) (uint64, error) {
	return s.db.Backup(w, 0)
}

// Restore loads a backup written by Backup.
func (s *BadgerStore) Restore(r io.Reader) error {
	return s.db.Load(r, restoreMaxPendingWrites)
}

// getPost reads the post stored under id inside txn
func getPost(txn *badger.Txn, id primitive.ObjectID) (*models.Post, error) {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = item.Value(func(val []byte) error {
		return unmarshalEntity(val, &post)
	})
	if err != nil {
		return nil, err
	}
	post.Normalize()
	return &post, nil
}

// putPost validates and writes post inside txn
func putPost(txn *badger.Txn, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("post validation failed: %w", err)
	}
	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	return txn.Set(postKey(post.ID), data)
}

// modifyPost atomically loads the post stored under id, lets fn change it
// and writes it back. fn may be run more than once.
func (s *BadgerStore) modifyPost(id primitive.ObjectID, fn func(post *models.Post) error) (*models.Post, error) {
	var result *models.Post
	err := retryOnConflict(s.db, func(txn *badger.Txn) error {
		post, err := getPost(txn, id)
		if err != nil {
			return err
		}
		if err := fn(post); err != nil {
			return err
		}
		result = post
		return putPost(txn, post)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// badgerLogger routes badger's internal logging to slog
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error(fmt.Sprintf(format, args...))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn(fmt.Sprintf(format, args...))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug(fmt.Sprintf(format, args...))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug(fmt.Sprintf(format, args...))
}
