package distributed

// Broadcast is a handle to a value distributed once to every worker.
// After Distribute returns, the value is immutable and may be read
// concurrently from any partition without synchronization.
//
// The in-process substrate shares one address space, so distribution is a
// single copy of the handle; the type exists to keep stages honest about
// the protocol: distribute once per top-level apply, read the handle once
// per partition, never re-ship parameters per example. A cluster substrate
// would put the actual transfer behind the same two calls.
type Broadcast[T any] struct {
	value T
}

// Distribute performs the one-time distribution of v and returns its handle.
func Distribute[T any](v T) *Broadcast[T] {
	return &Broadcast[T]{value: v}
}

// Value returns the worker-local copy of the distributed value.
func (b *Broadcast[T]) Value() T {
	return b.value
}
