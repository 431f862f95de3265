package viewmodel

// Pagination is the footer of a paginated table.
type Pagination struct {
	Page    int
	Limit   int
	Total   int
	HasPrev bool
	HasNext bool
	// Summary is the "Showing F to T of N" line.
	Summary string
	PrevURL string
	NextURL string
}
