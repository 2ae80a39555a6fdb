// Package pagination provides page parameters, page-range parsing, result
// metadata and record sorting shared by the artgrid commands.
//
// This package contains:
//   - Params: --page / --page-size / --sort flag values and validation
//   - ParsePageRange: "1-5,8" style page lists for cache warming
//   - Meta: position of a page within the whole catalog
//   - ArtworkSorter: stable in-memory sort of a loaded page
package pagination
