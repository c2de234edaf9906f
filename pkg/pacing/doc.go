// Package pacing makes the collector move at a human reader's speed.
//
// Listing pages render their cards lazily, so extraction only works
// after the page has been scrolled through the way a person would.
// The pacer owns that behavior:
//
//   - Settle(min, max) sleeps a uniform random duration, used after
//     page loads.
//   - Scroll(target, minSteps, maxSteps) performs the reading gesture:
//     a drawn number of scroll-down steps with randomized pixel deltas
//     and pauses, then a scroll back to the top so positional lookups
//     start from a known viewport.
//
// The pixel deltas and per-step pauses are fixed tuning; only the step
// count range comes from configuration.
//
// Randomness and sleeping sit behind the Rand interface and an
// injectable sleep function, so tests can drive the pacer
// deterministically and without real delays:
//
//	pacer := pacing.New()
//	pacer.SetRand(fixedRand)
//	pacer.SetSleep(func(time.Duration) {})
//	err := pacer.Scroll(session, 2, 5)
package pacing
