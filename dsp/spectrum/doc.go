// Package spectrum measures the frequency content of rendered audio.
//
// [Analyzer] wraps a forward FFT plan with a fixed window and scratch
// buffers and reports magnitude spectra and interpolated spectral peaks.
// [Goertzel] evaluates a single frequency without a full transform.
package spectrum
