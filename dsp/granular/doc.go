// Package granular implements the real-time core of a granular delay.
//
// Incoming audio is written into a multichannel history ([delay.Line]).
// On request, a grain is created by copying a short span of that history
// into a private buffer and shaping it with a fade envelope; grains then
// play back at their own rate, resampled with linear interpolation, and
// are mixed against the live input.
//
// # Threads
//
// Two goroutines touch a [Processor]:
//
//   - the audio goroutine calls [Processor.Process] once per block; it owns
//     the history, the grain pool and all scratch buffers;
//   - a low-priority pulse (see [Trigger]) calls [Processor.RequestGrain],
//     which only sets an atomic flag.
//
// The flag is consumed at most once per block, so spawn timing is
// quantised to block boundaries and several pulses between two blocks
// collapse into a single grain.
//
// # Allocation
//
// [New] and [Processor.Configure] allocate every buffer the signal path
// needs: the history, one slot per possible grain, the envelope scratch
// and the wet/dry buffers. Process does not allocate.
//
// # Usage
//
//	proc, err := granular.New(48000, 512, 2, granular.WithSeed(7))
//	if err != nil {
//		return err
//	}
//	params := granular.DefaultParams()
//	params.Mix = 0.7
//
//	go granular.NewTrigger(proc, granular.NewAtomicParams(params)).Run(ctx)
//
//	for block := range blocks {
//		proc.ProcessInPlace(block, params)
//	}
package granular
