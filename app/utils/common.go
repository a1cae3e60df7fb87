package utils

// Pages is the page count for a paginated listing.
func Pages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}
