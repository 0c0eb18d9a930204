package store

import (
	"bytes"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/tritium"
	"github.com/ehsanranjbar/tritium/codec/lex"
	"github.com/ehsanranjbar/tritium/iters"
)

// IteratorOptions bounds an iteration. Both bounds are inclusive and a nil
// bound is open.
type IteratorOptions struct {
	Min *tritium.Value
	Max *tritium.Value
}

// Iterator walks the entries of a store in ascending order of value, then name.
type Iterator struct {
	base   *badger.Iterator
	prefix []byte
	start  []byte
	max    []byte
}

var _ iters.Iterator[Entry] = (*Iterator)(nil)

// NewIterator creates a new iterator. It must be closed after use.
func (s *Store) NewIterator(opts IteratorOptions) (*Iterator, error) {
	prefix := s.spacePrefix(indexSpace)
	it := &Iterator{prefix: prefix, start: prefix}

	if opts.Min != nil {
		start, err := lex.AppendValue(bytes.Clone(prefix), *opts.Min)
		if err != nil {
			return nil, fmt.Errorf("failed to encode lower bound: %w", err)
		}
		it.start = start
	}
	if opts.Max != nil {
		upper, err := lex.EncodeValue(*opts.Max)
		if err != nil {
			return nil, fmt.Errorf("failed to encode upper bound: %w", err)
		}
		it.max = upper
	}

	iopts := badger.DefaultIteratorOptions
	iopts.Prefix = prefix
	it.base = s.base.NewIterator(iopts)
	return it, nil
}

// Close implements the iters.Iterator interface.
func (it *Iterator) Close() {
	it.base.Close()
}

// Next implements the iters.Iterator interface.
func (it *Iterator) Next() {
	it.base.Next()
}

// Rewind implements the iters.Iterator interface.
func (it *Iterator) Rewind() {
	it.base.Seek(it.start)
}

// Valid implements the iters.Iterator interface.
func (it *Iterator) Valid() bool {
	if !it.base.Valid() {
		return false
	}
	if it.max == nil {
		return true
	}

	// Encoded values are prefix free, so a key starting with the upper bound
	// holds exactly that value.
	rest := it.base.Item().Key()[len(it.prefix):]
	return bytes.HasPrefix(rest, it.max) || bytes.Compare(rest, it.max) < 0
}

// Value implements the iters.Iterator interface.
func (it *Iterator) Value() (Entry, error) {
	item := it.base.Item()
	v, name, err := lex.DecodeValue(item.Key()[len(it.prefix):])
	if err != nil {
		return Entry{}, fmt.Errorf("failed to decode index key: %w", err)
	}

	e := Entry{Name: string(name), Value: v}
	err = item.Value(func(val []byte) error {
		return e.ID.UnmarshalBinary(val)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to decode id of %q: %w", e.Name, err)
	}
	return e, nil
}
