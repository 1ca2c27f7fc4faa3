// Package paging slices ordered sequences into fixed-size, 1-indexed pages.
package paging

// Page returns the page-th slice of seq (1-indexed). Pages outside the
// sequence yield an empty slice; the last page may be short. The result
// aliases the input, callers must not mutate it.
func Page[T any](seq []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(seq) {
		return nil
	}
	end := start + pageSize
	if end > len(seq) {
		end = len(seq)
	}
	return seq[start:end]
}

// PageCount returns the number of pages needed for total items,
// zero when total is zero.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
