package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// PageKey derives the cache key for one page of a catalog endpoint.
// Different page sizes produce different keys because they paginate differently.
func PageKey(endpoint string, pageSize, page int) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(pageSize)))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(page)))
	return hex.EncodeToString(h.Sum(nil))
}
