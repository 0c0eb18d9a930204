package iters

// FilterIterator is an iterator that filters the items based on a predicate.
type FilterIterator[V any] struct {
	base Iterator[V]
	f    func(V) bool
}

// Filter creates a new filter iterator.
func Filter[V any](base Iterator[V], f func(V) bool) *FilterIterator[V] {
	return &FilterIterator[V]{base: base, f: f}
}

// Close implements the Iterator interface.
func (it *FilterIterator[V]) Close() {
	it.base.Close()
}

// Next implements the Iterator interface.
func (it *FilterIterator[V]) Next() {
	it.base.Next()
	it.findNext()
}

func (it *FilterIterator[V]) findNext() {
	for it.base.Valid() {
		v, err := it.base.Value()
		if err != nil || it.f(v) {
			return
		}
		it.base.Next()
	}
}

// Rewind implements the Iterator interface.
func (it *FilterIterator[V]) Rewind() {
	it.base.Rewind()
	it.findNext()
}

// Valid implements the Iterator interface.
func (it *FilterIterator[V]) Valid() bool {
	return it.base.Valid()
}

// Value implements the Iterator interface.
func (it *FilterIterator[V]) Value() (value V, err error) {
	return it.base.Value()
}
