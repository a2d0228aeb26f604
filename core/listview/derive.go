package listview

import (
	"sort"
	"strings"
)

// Options controls one derivation pass over a fetched collection.
// Every list view composes the same pipeline: filter, then search,
// then sort. Absent steps are no-ops.
type Options[T any] struct {
	// Filter keeps items for which it returns true. A nil Filter keeps
	// everything; views pass nil for their "ALL" sentinel.
	Filter func(T) bool

	// Search is a case-insensitive substring matched against the
	// concatenation of SearchFields. An empty term is a no-op.
	Search       string
	SearchFields func(T) []string

	// Less sorts the result with a stable sort. When nil, original
	// fetch order is preserved.
	Less func(a, b T) bool
}

// Derive applies filter, search and sort to items and returns a new
// slice; items is never mutated.
func Derive[T any](items []T, opts Options[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if opts.Filter != nil && !opts.Filter(item) {
			continue
		}
		out = append(out, item)
	}

	if term := strings.ToLower(strings.TrimSpace(opts.Search)); term != "" && opts.SearchFields != nil {
		matched := make([]T, 0, len(out))
		for _, item := range out {
			if matches(opts.SearchFields(item), term) {
				matched = append(matched, item)
			}
		}
		out = matched
	}

	if opts.Less != nil {
		sort.SliceStable(out, func(i, j int) bool { return opts.Less(out[i], out[j]) })
	}
	return out
}

func matches(fields []string, term string) bool {
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), term)
}
