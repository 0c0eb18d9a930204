// Package store keeps named balanced ternary values in a badger transaction.
//
// Every entry is stored twice: a msgpack record under its name, and an index
// key made of the order preserving encoding of its value followed by the name,
// so that entries can be scanned in numeric order.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/tritium"
	"github.com/ehsanranjbar/tritium/codec"
	"github.com/ehsanranjbar/tritium/codec/lex"
	"github.com/google/uuid"
)

// KV is the subset of *badger.Txn used by the store.
type KV interface {
	Delete(key []byte) error
	Get(key []byte) (*badger.Item, error)
	NewIterator(opts badger.IteratorOptions) *badger.Iterator
	Set(key, value []byte) error
}

// ErrNotFound is returned when a name has no value.
var ErrNotFound = errors.New("value not found")

const (
	recordSpace byte = 'v'
	indexSpace  byte = 'i'
)

// Entry is a named value. Its ID is assigned when the name is first stored and
// kept across updates.
type Entry struct {
	Name  string
	ID    uuid.UUID
	Value tritium.Value
}

type record struct {
	ID    uuid.UUID     `msgpack:"id"`
	Value tritium.Value `msgpack:"value"`
}

// Store is a store of named balanced ternary values.
type Store struct {
	base    KV
	prefix  []byte
	logger  *slog.Logger
	metrics *Metrics
	records codec.Codec[record]
	names   codec.Codec[string]
}

// New creates a new Store on top of base, which is usually a *badger.Txn.
func New(base KV, opts ...func(*Store)) *Store {
	s := &Store{
		base:    base,
		logger:  slog.New(slog.DiscardHandler),
		records: codec.MsgpackCodec[record]{},
		names:   codec.CodecFor[string](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithPrefix sets the prefix of every key written by the store.
func WithPrefix(prefix []byte) func(*Store) {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithLogger sets the logger of the store.
func WithLogger(logger *slog.Logger) func(*Store) {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics the store reports to.
func WithMetrics(m *Metrics) func(*Store) {
	return func(s *Store) {
		s.metrics = m
	}
}

// Get returns the entry of the given name.
func (s *Store) Get(name string) (Entry, error) {
	rec, err := s.get(name)
	s.metrics.observe(opGet, err)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, ID: rec.ID, Value: rec.Value}, nil
}

// Put sets the value of the given name. The value is always validated before
// it is written, regardless of its validated flag.
func (s *Store) Put(name string, v tritium.Value) (Entry, error) {
	e, err := s.put(name, v)
	s.metrics.observe(opPut, err)
	return e, err
}

// Add adds delta to the value of the given name and stores the sum. A missing
// name counts as zero.
func (s *Store) Add(name string, delta tritium.Value) (Entry, error) {
	e, err := s.add(name, delta)
	s.metrics.observe(opAdd, err)
	return e, err
}

// Delete deletes the value of the given name.
func (s *Store) Delete(name string) error {
	err := s.delete(name)
	s.metrics.observe(opDelete, err)
	return err
}

func (s *Store) get(name string) (record, error) {
	key, err := s.recordKey(name)
	if err != nil {
		return record{}, err
	}

	item, err := s.base.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return record{}, fmt.Errorf("failed to get %q: %w", name, err)
	}

	var rec record
	err = item.Value(func(val []byte) error {
		var derr error
		rec, derr = s.records.Decode(val)
		return derr
	})
	if err != nil {
		return record{}, fmt.Errorf("failed to decode %q: %w", name, err)
	}
	return rec, nil
}

// lookup is like get but reports a missing name through found.
func (s *Store) lookup(name string) (rec record, found bool, err error) {
	rec, err = s.get(name)
	if errors.Is(err, ErrNotFound) {
		return record{}, false, nil
	}
	return rec, err == nil, err
}

func (s *Store) put(name string, v tritium.Value) (Entry, error) {
	prev, found, err := s.lookup(name)
	if err != nil {
		return Entry{}, err
	}
	return s.write(name, prev, found, v)
}

func (s *Store) add(name string, delta tritium.Value) (Entry, error) {
	prev, found, err := s.lookup(name)
	if err != nil {
		return Entry{}, err
	}

	cur := tritium.Zero
	if found {
		cur = prev.Value
	}
	sum, err := cur.Add(delta)
	if err != nil {
		s.logger.Warn("rejected delta", "name", name, "delta", delta.Text(), "error", err)
		return Entry{}, fmt.Errorf("failed to add to %q: %w", name, err)
	}
	return s.write(name, prev, found, sum)
}

func (s *Store) write(name string, prev record, found bool, v tritium.Value) (Entry, error) {
	w, err := v.Validate(true)
	if err != nil {
		s.logger.Warn("rejected value", "name", name, "value", v.Text(), "error", err)
		return Entry{}, fmt.Errorf("failed to validate %q: %w", name, err)
	}

	rec := record{ID: prev.ID, Value: w}
	if found {
		if err := s.deleteIndex(name, prev.Value); err != nil {
			return Entry{}, err
		}
	} else {
		rec.ID = uuid.New()
	}

	data, err := s.records.Encode(rec)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode %q: %w", name, err)
	}
	key, err := s.recordKey(name)
	if err != nil {
		return Entry{}, err
	}
	if err := s.base.Set(key, data); err != nil {
		return Entry{}, fmt.Errorf("failed to set %q: %w", name, err)
	}

	ikey, err := s.indexKey(name, w)
	if err != nil {
		return Entry{}, err
	}
	if err := s.base.Set(ikey, rec.ID[:]); err != nil {
		return Entry{}, fmt.Errorf("failed to set index of %q: %w", name, err)
	}

	s.metrics.observeDigits(w.Len())
	s.logger.Debug("value stored", "name", name, "value", w.Text(), "id", rec.ID)
	return Entry{Name: name, ID: rec.ID, Value: w}, nil
}

func (s *Store) delete(name string) error {
	prev, err := s.get(name)
	if err != nil {
		return err
	}

	if err := s.deleteIndex(name, prev.Value); err != nil {
		return err
	}
	key, err := s.recordKey(name)
	if err != nil {
		return err
	}
	if err := s.base.Delete(key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}

	s.logger.Debug("value deleted", "name", name, "id", prev.ID)
	return nil
}

func (s *Store) deleteIndex(name string, v tritium.Value) error {
	key, err := s.indexKey(name, v)
	if err != nil {
		return err
	}
	if err := s.base.Delete(key); err != nil {
		return fmt.Errorf("failed to delete index of %q: %w", name, err)
	}
	return nil
}

func (s *Store) spacePrefix(space byte) []byte {
	return slices.Concat(s.prefix, []byte{space})
}

func (s *Store) recordKey(name string) ([]byte, error) {
	bz, err := s.names.Encode(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode name %q: %w", name, err)
	}
	return append(s.spacePrefix(recordSpace), bz...), nil
}

func (s *Store) indexKey(name string, v tritium.Value) ([]byte, error) {
	key, err := lex.AppendValue(s.spacePrefix(indexSpace), v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode index of %q: %w", name, err)
	}
	bz, err := s.names.Encode(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode name %q: %w", name, err)
	}
	return append(key, bz...), nil
}
