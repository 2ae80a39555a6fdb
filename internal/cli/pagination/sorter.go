package pagination

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rshade/artgrid/internal/catalog"
)

// Sort fields accepted by ArtworkSorter.
const (
	SortFieldID     = "id"
	SortFieldTitle  = "title"
	SortFieldOrigin = "origin"
	SortFieldStart  = "start"
	SortFieldEnd    = "end"
)

var artworkSortFields = []string{SortFieldID, SortFieldTitle, SortFieldOrigin, SortFieldStart, SortFieldEnd}

// Sorter sorts one loaded page of records.
type Sorter interface {
	// Sort returns a sorted copy of records.
	Sort(records []catalog.Artwork, field, order string) []catalog.Artwork
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// ArtworkSorter implements Sorter for catalog.Artwork.
type ArtworkSorter struct{}

// NewArtworkSorter creates an ArtworkSorter.
func NewArtworkSorter() *ArtworkSorter {
	return &ArtworkSorter{}
}

// IsValidField checks if the field is valid for sorting.
func (s *ArtworkSorter) IsValidField(field string) bool {
	return slices.Contains(artworkSortFields, field)
}

// GetValidFields returns all valid sort fields in cycling order.
func (s *ArtworkSorter) GetValidFields() []string {
	return slices.Clone(artworkSortFields)
}

// NextField returns the field after current in cycling order. The empty field
// (page order) follows the last one.
func (s *ArtworkSorter) NextField(current string) string {
	i := slices.Index(artworkSortFields, current)
	if i == len(artworkSortFields)-1 {
		return DefaultSortField
	}
	return artworkSortFields[i+1]
}

// Sort returns a stably sorted copy of records. An invalid field returns the
// input unchanged.
func (s *ArtworkSorter) Sort(records []catalog.Artwork, field, order string) []catalog.Artwork {
	if !s.IsValidField(field) {
		return records
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b catalog.Artwork) int {
		c := compareArtwork(a, b, field)
		if order == SortOrderDesc {
			return -c
		}
		return c
	})
	return sorted
}

func compareArtwork(a, b catalog.Artwork, field string) int {
	switch field {
	case SortFieldID:
		return cmp.Compare(a.ID, b.ID)
	case SortFieldTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortFieldOrigin:
		return strings.Compare(strings.ToLower(a.PlaceOfOrigin), strings.ToLower(b.PlaceOfOrigin))
	case SortFieldStart:
		return cmp.Compare(a.DateStart, b.DateStart)
	case SortFieldEnd:
		return cmp.Compare(a.DateEnd, b.DateEnd)
	default:
		return 0
	}
}
