// Package filter composes list predicates. A filter value of "" or "all"
// (any case) never constrains a list, and predicates are combined with AND so
// the order they are applied in does not change the result.
package filter

import "strings"

// Predicate reports whether an item should be kept.
type Predicate[T any] func(T) bool

// IsWildcard reports whether value matches everything.
func IsWildcard(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all")
}

// And combines predicates. Nil predicates are skipped and an empty set matches all.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(item T) bool {
		for _, p := range active {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Equal keeps items whose field equals value. Wildcards yield nil.
func Equal[T any](value string, get func(T) string) Predicate[T] {
	if IsWildcard(value) {
		return nil
	}
	want := strings.TrimSpace(value)
	return func(item T) bool {
		return get(item) == want
	}
}

// EqualFold is Equal without case sensitivity.
func EqualFold[T any](value string, get func(T) string) Predicate[T] {
	if IsWildcard(value) {
		return nil
	}
	want := strings.TrimSpace(value)
	return func(item T) bool {
		return strings.EqualFold(get(item), want)
	}
}

// Contains keeps items where any getter contains search, ignoring case.
func Contains[T any](search string, getters ...func(T) string) Predicate[T] {
	if strings.TrimSpace(search) == "" {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	return func(item T) bool {
		for _, get := range getters {
			if strings.Contains(strings.ToLower(get(item)), needle) {
				return true
			}
		}
		return false
	}
}

// In keeps items whose field is one of values.
func In[T any](values []string, get func(T) string) Predicate[T] {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(item T) bool {
		_, ok := set[get(item)]
		return ok
	}
}

// Or keeps items matching at least one non-nil predicate. With no
// predicates it matches nothing.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && p(item) {
				return true
			}
		}
		return false
	}
}

// Apply returns the items matching every predicate, preserving input order.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	keep := And(preds...)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
