package pagination

// PageSize is the fixed number of records per page across every listing.
const PageSize = 10

// NormalizePage clamps the requested page to a valid 1-indexed value.
// Pages are 1-indexed; anything below 1 normalizes to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts the normalized page into a row offset.
func Offset(page int) int {
	return (NormalizePage(page) - 1) * PageSize
}

// Page describes one page of results plus enough metadata for clients to
// render pagers. A page past the end carries zero items and is not an error.
type Page struct {
	Number     int   `json:"page"`
	Size       int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Describe computes the page metadata for a total row count.
func Describe(page int, totalItems int64) Page {
	totalPages := int((totalItems + PageSize - 1) / PageSize)
	return Page{
		Number:     NormalizePage(page),
		Size:       PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
