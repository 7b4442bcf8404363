package usecase

import "sort"

// uniqueValues collects the distinct non-empty values of fn over items in first-seen order.
func uniqueValues[T any](items []T, fn func(T) string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, item := range items {
		v := fn(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortedUniqueValues[T any](items []T, fn func(T) string) []string {
	out := uniqueValues(items, fn)
	sort.Strings(out)
	return out
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
