package uploader

import "sync"

// Progress is the aggregate upload state delivered to the caller on every
// job progress event.
type Progress struct {
	BytesSent  int64
	BytesTotal int64
	Percent    float64
	Completed  int
	Failed     int
	Total      int
}

// ProgressFunc receives aggregate progress updates. It may be called from
// multiple worker goroutines; delivery is serialized by the tracker.
type ProgressFunc func(Progress)

// tracker is the single synchronization point for progress aggregation.
// Workers report per-job byte counts; the tracker recomputes the aggregate
// under its mutex so concurrent updates are never lost.
type tracker struct {
	mu        sync.Mutex
	sent      []int64
	totals    []int64
	total     int64
	completed int
	failed    int
	callback  ProgressFunc
}

func newTracker(totals []int64, callback ProgressFunc) *tracker {
	t := &tracker{
		sent:     make([]int64, len(totals)),
		totals:   totals,
		callback: callback,
	}
	for _, size := range totals {
		t.total += size
	}
	return t
}

func (t *tracker) update(job int, sentBytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sentBytes > t.totals[job] {
		sentBytes = t.totals[job]
	}
	if sentBytes < t.sent[job] {
		return
	}
	t.sent[job] = sentBytes
	t.emit()
}

func (t *tracker) complete(job int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent[job] = t.totals[job]
	t.completed++
	t.emit()
}

func (t *tracker) fail(job int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed++
	t.emit()
}

// emit must be called with the mutex held.
func (t *tracker) emit() {
	if t.callback == nil {
		return
	}
	var sent int64
	for _, s := range t.sent {
		sent += s
	}
	percent := 100.0
	if t.total > 0 {
		percent = float64(sent) / float64(t.total) * 100
	}
	t.callback(Progress{
		BytesSent:  sent,
		BytesTotal: t.total,
		Percent:    percent,
		Completed:  t.completed,
		Failed:     t.failed,
		Total:      len(t.totals),
	})
}
