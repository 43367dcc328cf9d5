package loop

import (
	"context"
	"time"
)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// Scheduler runs callbacks in step with the host's frames.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type request struct {
	id FrameID
	fn func()
}

// Queue is a Scheduler that holds requested callbacks until the host calls
// Flush at the start of its next frame. Callbacks requested while flushing
// wait for the following frame.
type Queue struct {
	seq      FrameID
	pending  []request
	flushing []request
}

func (q *Queue) RequestFrame(fn func()) FrameID {
	q.seq++
	q.pending = append(q.pending, request{id: q.seq, fn: fn})
	return q.seq
}

// CancelFrame drops a pending callback. Cancelling a callback that already
// ran, or one that is running, does nothing.
func (q *Queue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.flushing {
		if q.flushing[i].id == id {
			q.flushing[i].fn = nil
			return
		}
	}
}

// Pending reports how many callbacks are waiting for the next frame.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Flush runs every callback requested before the call and returns how many ran.
func (q *Queue) Flush() int {
	q.flushing, q.pending = q.pending, nil
	ran := 0
	for i := range q.flushing {
		if fn := q.flushing[i].fn; fn != nil {
			q.flushing[i].fn = nil
			fn()
			ran++
		}
	}
	q.flushing = nil
	return ran
}

// Drive flushes q every interval until limit frames have run, nothing is
// left to run, or ctx is done. A limit of zero means no limit.
func Drive(ctx context.Context, q *Queue, interval time.Duration, limit int) (int, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frames := 0
	for limit == 0 || frames < limit {
		if q.Pending() == 0 {
			return frames, nil
		}
		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		case <-ticker.C:
			q.Flush()
			frames++
		}
	}
	return frames, nil
}
