// File: internal/state/mutations.go
package state

// Append returns a mutation adding item at the end of the collection
func Append[T Item](item T) func([]T) []T {
	return func(items []T) []T {
		return append(items, item)
	}
}

// Remove returns a mutation dropping every item with the given key
func Remove[T Item](key string) func([]T) []T {
	return RemoveWhere(func(item T) bool { return item.Key() == key })
}

// RemoveWhere returns a mutation dropping every item matching pred
func RemoveWhere[T Item](pred func(T) bool) func([]T) []T {
	return func(items []T) []T {
		kept := items[:0]
		for _, item := range items {
			if !pred(item) {
				kept = append(kept, item)
			}
		}
		return kept
	}
}

// Patch returns a mutation rewriting the item with the given key in place
func Patch[T Item](key string, fn func(T) T) func([]T) []T {
	return func(items []T) []T {
		for i, item := range items {
			if item.Key() == key {
				items[i] = fn(item)
			}
		}
		return items
	}
}

// Merge returns a mutation that folds each update into the item with the same key via combine.
// Order is kept and updates for unknown keys are ignored.
func Merge[T Item](updates []T, combine func(current, update T) T) func([]T) []T {
	byKey := make(map[string]T, len(updates))
	for _, u := range updates {
		byKey[u.Key()] = u
	}
	return func(items []T) []T {
		for i, item := range items {
			if u, ok := byKey[item.Key()]; ok {
				items[i] = combine(item, u)
			}
		}
		return items
	}
}
