//go:build !granulardebug

package invariant

// Enabled reports whether assertions are compiled in.
const Enabled = false

// Index is a no-op without the granulardebug tag.
func Index(_ string, _, _ int) {}

// Span is a no-op without the granulardebug tag.
func Span(_ string, _, _, _ int) {}

// Check is a no-op without the granulardebug tag. Its condition is still
// evaluated by the caller; wrap costly conditions in if Enabled.
func Check(_ bool, _ string) {}
