// Package cache stores fetched catalog pages on disk with TTL expiration.
//
// Each entry is a JSON file in ~/.artgrid/cache/ named after a SHA-256 key
// derived from the catalog endpoint, page size and page number, so revisiting
// a page (or reopening the browser) within the TTL avoids a network round
// trip. A TTL of zero disables expiry.
package cache
