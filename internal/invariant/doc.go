// Package invariant holds index-arithmetic assertions for the real-time
// signal path.
//
// The checks are compiled in only when building with the granulardebug tag:
//
//	go test -tags granulardebug ./...
//
// Without the tag every function is an empty, inlinable no-op, so call
// sites can stay in hot loops. Arguments are still evaluated, so hot paths
// guard non-trivial conditions with Enabled, which is a constant:
//
//	if invariant.Enabled {
//		invariant.Check(pos < limit, "cursor out of range")
//	}
package invariant
