package catalog

import "slices"

// Artwork is one catalog record. Only ID participates in selection; the rest is
// display payload.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     int    `json:"date_start"`
	DateEnd       int    `json:"date_end"`
}

// Page is one fetched page of records in API order.
type Page struct {
	// Number is the 1-based page number.
	Number int `json:"number"`

	// Limit is the page size the page was requested with.
	Limit int `json:"limit"`

	// Total is the record count of the whole catalog.
	Total int `json:"total"`

	TotalPages int       `json:"total_pages"`
	Records    []Artwork `json:"records"`

	// APIVersion is the info.version reported by the API, if any.
	APIVersion string `json:"api_version,omitempty"`
}

// IDs returns the record ids in page order.
func (p *Page) IDs() []int {
	ids := make([]int, len(p.Records))
	for i, r := range p.Records {
		ids[i] = r.ID
	}
	return ids
}

// Clone returns a copy that shares no slices with p.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	c := *p
	c.Records = slices.Clone(p.Records)
	return &c
}

// FirstRow returns the 1-based catalog position of the first record, or 0 for
// an empty page.
func (p *Page) FirstRow() int {
	if len(p.Records) == 0 {
		return 0
	}
	return (p.Number-1)*p.Limit + 1
}

// LastRow returns the 1-based catalog position of the last record, or 0 for
// an empty page.
func (p *Page) LastRow() int {
	if len(p.Records) == 0 {
		return 0
	}
	return (p.Number-1)*p.Limit + len(p.Records)
}

// apiResponse is the envelope returned by GET /artworks.
type apiResponse struct {
	Pagination apiPagination `json:"pagination"`
	Data       []Artwork     `json:"data"`
	Info       apiInfo       `json:"info"`
}

type apiPagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

type apiInfo struct {
	Version string `json:"version"`
}

func (r *apiResponse) toPage(requested, limit int) *Page {
	if r.Pagination.Limit > 0 {
		limit = r.Pagination.Limit
	}
	totalPages := r.Pagination.TotalPages
	if totalPages == 0 && limit > 0 {
		totalPages = (r.Pagination.Total + limit - 1) / limit
	}
	records := r.Data
	if records == nil {
		records = []Artwork{}
	}
	return &Page{
		Number:     requested,
		Limit:      limit,
		Total:      r.Pagination.Total,
		TotalPages: totalPages,
		Records:    records,
		APIVersion: r.Info.Version,
	}
}
