package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for computations.
var globalIDCounter uint64

// nextID returns the next unique computation ID.
func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}
