package pagination

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Pagination defaults and limits. MaxPageSize is the API's own cap.
const (
	DefaultPage      = 1
	MinPage          = 1
	DefaultPageSize  = 12
	MinPageSize      = 1
	MaxPageSize      = 100
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"

	// MaxRangePages bounds how many pages a single range expression may expand to.
	MaxRangePages = 1000
)

// PageSizeOptions are the rows-per-page choices offered by the browser.
var PageSizeOptions = []int{10, 25, 50, 100}

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 100")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'title:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidRange      = errors.New("invalid page range")
)

// Params holds the page-related flags of a command.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is the number of records per page.
	PageSize int

	// SortField is the field name to sort the loaded page by (e.g., "title").
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewParams creates Params with default values.
func NewParams() *Params {
	return &Params{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks page and page size bounds.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	return ValidatePageSize(p.PageSize)
}

// ValidatePageSize checks that n is within the API page size limits.
func ValidatePageSize(n int) error {
	if n < MinPageSize || n > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, n)
	}
	return nil
}

// IsStandardPageSize reports whether n is one of PageSizeOptions.
func IsStandardPageSize(n int) bool {
	return slices.Contains(PageSizeOptions, n)
}

// Offset returns the 0-based index of the first record on the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the number of pages needed for totalResults records.
func (p Params) TotalPages(totalResults int) int {
	if totalResults <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (totalResults + p.PageSize - 1) / p.PageSize
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "title", "start:desc", "id:asc"
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// ParsePageRange expands an expression such as "1-5,8" into sorted, distinct
// page numbers.
func ParsePageRange(expr string) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidRange)
	}

	seen := make(map[int]struct{})
	for part := range strings.SplitSeq(expr, ",") {
		part = strings.TrimSpace(part)
		lo, hi, err := parseRangePart(part)
		if err != nil {
			return nil, err
		}
		if hi-lo+1 > MaxRangePages || len(seen)+hi-lo+1 > MaxRangePages {
			return nil, fmt.Errorf("%w: more than %d pages", ErrInvalidRange, MaxRangePages)
		}
		for p := lo; p <= hi; p++ {
			seen[p] = struct{}{}
		}
	}

	pages := make([]int, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	slices.Sort(pages)
	return pages, nil
}

//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func parseRangePart(part string) (lo, hi int, err error) {
	if part == "" {
		return 0, 0, fmt.Errorf("%w: empty element", ErrInvalidRange)
	}

	from, to, isRange := strings.Cut(part, "-")
	lo, err = strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, part)
	}
	hi = lo
	if isRange {
		hi, err = strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, part)
		}
	}

	if lo < MinPage || hi < lo {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidRange, part)
	}
	return lo, hi, nil
}
