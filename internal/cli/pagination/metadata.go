package pagination

// Meta describes where a page sits within the whole catalog.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstRow    int  `json:"first_row"    yaml:"first_row"`
	LastRow     int  `json:"last_row"     yaml:"last_row"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds page metadata. rows is the number of records actually on the
// page, which may be less than the page size on the last page.
func NewMeta(params Params, totalCount, rows int) Meta {
	currentPage := max(params.Page, MinPage)
	totalPages := params.TotalPages(totalCount)

	m := Meta{
		CurrentPage: currentPage,
		PageSize:    params.PageSize,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
	if rows > 0 {
		m.FirstRow = (currentPage-1)*params.PageSize + 1
		m.LastRow = m.FirstRow + rows - 1
	}
	return m
}
