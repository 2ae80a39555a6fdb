// Package catalog fetches pages of artwork records from the Art Institute of
// Chicago public API.
//
// The package provides:
//   - Client: rate limited HTTP source with request de-duplication
//   - CachedSource: file cache decorator with an explicit Refresh
//   - Navigator: issues tickets so responses for superseded requests can be dropped
//   - Warm: concurrent pre-fetch of a page range
//
// Selection state is never touched here; see package selection.
package catalog
