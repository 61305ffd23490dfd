package repository

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when inserting a record whose id is taken.
	ErrDuplicate = errors.New("record already exists")
)

// memoryTable is an ordered, mutex guarded record set. Every read and write
// goes through clone so callers never share memory with the table. Writes are
// serialised; concurrent updates to one record are last-write-wins.
type memoryTable[T any] struct {
	mu    sync.RWMutex
	rows  []T
	id    func(T) string
	clone func(T) T
}

func newMemoryTable[T any](seed []T, id func(T) string, clone func(T) T) *memoryTable[T] {
	t := &memoryTable[T]{id: id, clone: clone}
	t.rows = make([]T, 0, len(seed))
	for _, row := range seed {
		t.rows = append(t.rows, clone(row))
	}
	return t
}

func (t *memoryTable[T]) all() []T {
	return t.filter(nil)
}

func (t *memoryTable[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

func (t *memoryTable[T]) find(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.indexOf(id); i >= 0 {
		return t.clone(t.rows[i]), nil
	}
	var zero T
	return zero, ErrNotFound
}

func (t *memoryTable[T]) insert(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.indexOf(t.id(row)) >= 0 {
		return ErrDuplicate
	}
	t.rows = append(t.rows, t.clone(row))
	return nil
}

// upsert replaces the row with the same id or appends it.
func (t *memoryTable[T]) upsert(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOf(t.id(row)); i >= 0 {
		t.rows[i] = t.clone(row)
		return
	}
	t.rows = append(t.rows, t.clone(row))
}

// update applies mutate to a private copy and stores it only when mutate succeeds.
func (t *memoryTable[T]) update(id string, mutate func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	i := t.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}
	next := t.clone(t.rows[i])
	if err := mutate(&next); err != nil {
		return zero, err
	}
	t.rows[i] = next
	return t.clone(next), nil
}

func (t *memoryTable[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

func (t *memoryTable[T]) count(keep func(T) bool) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			n++
		}
	}
	return n
}

func (t *memoryTable[T]) indexOf(id string) int {
	for i, row := range t.rows {
		if t.id(row) == id {
			return i
		}
	}
	return -1
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
