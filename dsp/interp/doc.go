// Package interp provides fractional-position interpolation primitives used
// by resampling grain playback.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation (default)
//   - [Hermite4]: 4-point cubic Hermite
//
// [At] reads a buffer at a fractional index with a selected [Mode].
package interp
