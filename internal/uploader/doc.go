// Package uploader drives the concurrent upload of a draft's pending assets.
//
// One job is built per pending asset; jobs run under a bounded worker pool
// with no ordering dependency between them. Progress events from all workers
// feed a mutex-guarded accumulator that recomputes the aggregate percentage
// on every update. A failed job never cancels its siblings: failures are
// recorded per asset and reported together once every job settles, so a
// caller-initiated retry re-queues only what is still pending.
package uploader
