package pagination

// Offset returns the number of rows to skip for a 1-based page.
func Offset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// TotalPages returns ceil(total/perPage), or 0 when there is nothing to show.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Window returns up to size page numbers centred on current, clamped to
// [1, totalPages]. It is used to render the numbered page links.
func Window(current, totalPages, size int) []int {
	if totalPages < 1 || size < 1 {
		return nil
	}
	if size > totalPages {
		size = totalPages
	}
	start := current - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}
	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
