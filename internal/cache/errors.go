package cache

import "errors"

// ErrCacheMiss is returned by Get when the key is not in the cache.
// Callers use errors.Is to distinguish a true miss from an infrastructure
// failure: a miss means "fall back to the relational store", a failure
// means the backend itself is unhealthy.
var ErrCacheMiss = errors.New("cache miss")
