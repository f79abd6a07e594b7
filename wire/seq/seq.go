// Package seq implements a small generic growable sequence, the
// commodity ordered-collection building block that the wire package
// uses for a wire's attachments and listeners and a driver's
// back-references. It plays the role that a demand-realloc'd vector
// plays in lower-level device-modelling code: append, insert-at,
// delete-at, pop, and random access, with no semantics of its own.
package seq

import "fmt"

// ErrFull is returned by Append/Insert when a Sequence was constructed
// with WithMaxLen and is already at capacity.
var ErrFull = fmt.Errorf("seq: sequence at capacity")

// Option configures a Sequence at construction time.
type Option func(*options)

type options struct {
	maxLen int // 0 means unbounded
}

// WithMaxLen bounds the sequence to at most n elements. Append and
// Insert return ErrFull once the bound is reached. By default a
// Sequence is unbounded, behaving like a plain Go slice.
func WithMaxLen(n int) Option {
	return func(o *options) { o.maxLen = n }
}

// Sequence is an ordered, growable collection of T.
type Sequence[T any] struct {
	elems  []T
	maxLen int
}

// New returns an empty Sequence.
func New[T any](opts ...Option) *Sequence[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Sequence[T]{maxLen: o.maxLen}
}

// Len returns the number of elements in the sequence.
func (s *Sequence[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}

// At returns the i'th element.
func (s *Sequence[T]) At(i int) T {
	return s.elems[i]
}

// Set overwrites the i'th element.
func (s *Sequence[T]) Set(i int, v T) {
	s.elems[i] = v
}

// Last returns the last element. Panics if the sequence is empty,
// same as indexing past the end of a slice.
func (s *Sequence[T]) Last() T {
	return s.elems[len(s.elems)-1]
}

// Append adds v to the end of the sequence.
func (s *Sequence[T]) Append(v T) error {
	if s.maxLen != 0 && len(s.elems) >= s.maxLen {
		return ErrFull
	}
	s.elems = append(s.elems, v)
	return nil
}

// Insert places v at index i, shifting later elements up by one.
func (s *Sequence[T]) Insert(i int, v T) error {
	if s.maxLen != 0 && len(s.elems) >= s.maxLen {
		return ErrFull
	}
	var zero T
	s.elems = append(s.elems, zero)
	copy(s.elems[i+1:], s.elems[i:])
	s.elems[i] = v
	return nil
}

// DeleteAt removes the element at index i, shifting later elements
// down by one. Order of the remaining elements is preserved.
func (s *Sequence[T]) DeleteAt(i int) {
	copy(s.elems[i:], s.elems[i+1:])
	var zero T
	s.elems[len(s.elems)-1] = zero
	s.elems = s.elems[:len(s.elems)-1]
}

// Pop removes and returns the last element.
func (s *Sequence[T]) Pop() T {
	v := s.Last()
	s.DeleteAt(len(s.elems) - 1)
	return v
}

// IndexFunc returns the first index for which match reports true, or
// -1 if none does.
func (s *Sequence[T]) IndexFunc(match func(T) bool) int {
	for i, v := range s.elems {
		if match(v) {
			return i
		}
	}
	return -1
}

// LastIndexFunc returns the last index for which match reports true,
// searching from the end, or -1 if none does.
func (s *Sequence[T]) LastIndexFunc(match func(T) bool) int {
	for i := len(s.elems) - 1; i >= 0; i-- {
		if match(s.elems[i]) {
			return i
		}
	}
	return -1
}

// DeleteFirstMatch removes the first element matching pred and
// reports whether one was found.
func (s *Sequence[T]) DeleteFirstMatch(pred func(T) bool) bool {
	i := s.IndexFunc(pred)
	if i < 0 {
		return false
	}
	s.DeleteAt(i)
	return true
}

// DeleteLastMatch removes the last element matching pred (searching
// from the end) and reports whether one was found. Used for
// self-unregistration where the most-recently-added match should win.
func (s *Sequence[T]) DeleteLastMatch(pred func(T) bool) bool {
	i := s.LastIndexFunc(pred)
	if i < 0 {
		return false
	}
	s.DeleteAt(i)
	return true
}

// Each calls fn for every element, front to back.
func (s *Sequence[T]) Each(fn func(T)) {
	for _, v := range s.elems {
		fn(v)
	}
}

// EachReverse calls fn for every element, back to front. Used by the
// notification pipeline so a listener may safely remove itself (or
// an element after it) during its own callback. Removing an element
// before the current one shifts the current element down, and it is
// then visited again.
func (s *Sequence[T]) EachReverse(fn func(T)) {
	for i := len(s.elems) - 1; i >= 0; i-- {
		fn(s.elems[i])
	}
}

// Clear empties the sequence.
func (s *Sequence[T]) Clear() {
	s.elems = nil
}
