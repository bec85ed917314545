// Package memory provides in-memory implementations of the repository
// interfaces. The engine runs unchanged against these or the Mongo-backed
// repositories; tests and local development use this package.
package memory

import "sync"

// store is the shared locking base of the in-memory repositories.
type store struct {
	mu sync.RWMutex
}
