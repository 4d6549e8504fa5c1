package cache

import (
	"errors"
	"fmt"
)

var errNotFound = errors.New("cache: loader reported not found")

// anyKeyToString renders a comparable cache key into a singleflight group
// key. Keys in this package are pubkeys, mint/pool pairs, and strings —
// none collide under %v formatting.
func anyKeyToString[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
