//go:build granulardebug

package invariant

import "fmt"

// Enabled reports whether assertions are compiled in.
const Enabled = true

// Index panics unless 0 <= i < n.
func Index(name string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("invariant: %s index %d out of range [0, %d)", name, i, n))
	}
}

// Span panics unless [start, start+count) lies within [0, n).
func Span(name string, start, count, n int) {
	if start < 0 || count < 0 || start+count > n {
		panic(fmt.Sprintf("invariant: %s span [%d, %d) out of range [0, %d)", name, start, start+count, n))
	}
}

// Check panics with msg when cond is false.
func Check(cond bool, msg string) {
	if !cond {
		panic("invariant: " + msg)
	}
}
