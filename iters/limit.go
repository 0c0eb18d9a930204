package iters

// LimitIterator is an iterator that stops after n items.
type LimitIterator[V any] struct {
	base Iterator[V]
	n    int
	i    int
}

// Limit creates a new limit iterator.
func Limit[V any](base Iterator[V], n int) *LimitIterator[V] {
	return &LimitIterator[V]{base: base, n: n}
}

// Close implements the Iterator interface.
func (it *LimitIterator[V]) Close() {
	it.base.Close()
}

// Next implements the Iterator interface.
func (it *LimitIterator[V]) Next() {
	if it.i < it.n {
		it.base.Next()
		it.i++
	}
}

// Rewind implements the Iterator interface.
func (it *LimitIterator[V]) Rewind() {
	it.base.Rewind()
	it.i = 0
}

// Valid implements the Iterator interface.
func (it *LimitIterator[V]) Valid() bool {
	return it.i < it.n && it.base.Valid()
}

// Value implements the Iterator interface.
func (it *LimitIterator[V]) Value() (value V, err error) {
	return it.base.Value()
}
