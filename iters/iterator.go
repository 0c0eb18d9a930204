// Package iters provides generic combinators over rewindable iterators.
package iters

// Iterator is a rewindable cursor over values of type V.
type Iterator[V any] interface {
	Close()
	Next()
	Rewind()
	Valid() bool
	Value() (value V, err error)
}
