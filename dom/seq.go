package dom

import (
	"container/list"
	"iter"

	"github.com/signadot/dawm/debug"
)

// seq is the backing sequence of a collection: a doubly linked list plus an
// optional recompute function describing how to regenerate it from the
// tree. A seq with a recompute function reconciles itself on every read; a
// seq without one is a manual list and is only changed directly.
type seq[T comparable] struct {
	l         list.List
	recompute iter.Seq[T]
	name      string
	// frozen suspends reconciling while the owner writes back to the tree.
	frozen bool
}

func newSeq[T comparable](name string, recompute iter.Seq[T]) *seq[T] {
	s := &seq[T]{recompute: recompute, name: name}
	s.l.Init()
	return s
}

// sync splices the list into the recomputed order in place. Elements are
// reused while they agree with the recomputed sequence; the first
// disagreement inserts the new value, and whatever is left unmatched at the
// end is dropped.
func (s *seq[T]) sync() {
	if s.recompute == nil || s.frozen {
		return
	}
	e := s.l.Front()
	n := 0
	for v := range s.recompute {
		n++
		if e != nil && e.Value.(T) == v {
			e = e.Next()
			continue
		}
		if e != nil {
			s.l.InsertBefore(v, e)
		} else {
			s.l.PushBack(v)
		}
	}
	for e != nil {
		next := e.Next()
		s.l.Remove(e)
		e = next
	}
	if debug.Collect() {
		debug.Logf("%s: reconciled %d items", s.name, n)
	}
}

func (s *seq[T]) live() bool {
	return s.recompute != nil
}

func (s *seq[T]) len() int {
	s.sync()
	return s.l.Len()
}

func (s *seq[T]) elem(i int) *list.Element {
	if i < 0 || i >= s.l.Len() {
		return nil
	}
	e := s.l.Front()
	for ; i > 0; i-- {
		e = e.Next()
	}
	return e
}

func (s *seq[T]) item(i int) (T, bool) {
	s.sync()
	e := s.elem(i)
	if e == nil {
		var zero T
		return zero, false
	}
	return e.Value.(T), true
}

// all iterates over a snapshot taken when iteration starts, so the loop
// body may read the same collection again.
func (s *seq[T]) all() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.slice() {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (s *seq[T]) slice() []T {
	s.sync()
	res := make([]T, 0, s.l.Len())
	for e := s.l.Front(); e != nil; e = e.Next() {
		res = append(res, e.Value.(T))
	}
	return res
}

func (s *seq[T]) find(f func(T) bool) (T, bool) {
	s.sync()
	for e := s.l.Front(); e != nil; e = e.Next() {
		if v := e.Value.(T); f(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// The remaining methods are for manual lists.

func (s *seq[T]) push(v T) {
	s.l.PushBack(v)
}

func (s *seq[T]) insert(i int, v T) bool {
	if i == s.l.Len() {
		s.l.PushBack(v)
		return true
	}
	e := s.elem(i)
	if e == nil {
		return false
	}
	s.l.InsertBefore(v, e)
	return true
}

func (s *seq[T]) set(i int, v T) bool {
	e := s.elem(i)
	if e == nil {
		return false
	}
	e.Value = v
	return true
}

func (s *seq[T]) remove(i int) bool {
	e := s.elem(i)
	if e == nil {
		return false
	}
	s.l.Remove(e)
	return true
}
