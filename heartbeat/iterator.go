package heartbeat

import (
	"context"
	"iter"
)

// Beats returns an unbounded iterator over beat indices, blocking for the
// current delay before each one. The first beat is available immediately.
//
//	for i := range hb.Beats() {
//		if poll() {
//			hb.Faster()
//		} else {
//			hb.Slower()
//		}
//	}
func (h *Heartbeat) Beats() iter.Seq[int] {
	return h.BeatsContext(context.Background())
}

// BeatsContext is like Beats but stops once ctx is cancelled. Both adapters
// delegate all timing to WaitContext; a beat interrupted mid-wait is not
// yielded.
func (h *Heartbeat) BeatsContext(ctx context.Context) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; ; i++ {
			if err := h.WaitContext(ctx); err != nil {
				return
			}

			if !yield(i) {
				return
			}
		}
	}
}
