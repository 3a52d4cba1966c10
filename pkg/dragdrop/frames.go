package dragdrop

import "time"

// FrameInterval is the coalescing window for preview recomputes
const FrameInterval = 16 * time.Millisecond

// FrameScheduler runs fn once at the next frame, never before RequestFrame
// returns. cancel prevents a frame that has not started yet from running and
// may be called more than once.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// TimerFrames schedules frames with time.AfterFunc
type TimerFrames struct {
	Interval time.Duration
}

func (f TimerFrames) RequestFrame(fn func()) func() {
	interval := f.Interval
	if interval <= 0 {
		interval = FrameInterval
	}
	t := time.AfterFunc(interval, fn)
	return func() { t.Stop() }
}

// PaletteDropIndex returns where a note dropped at y lands in a vertical
// list whose entries start at tops and are height tall. The top half of a
// hovered entry inserts before it, the bottom half after it.
func PaletteDropIndex(y float64, tops []float64, height float64) int {
	for i, top := range tops {
		if y < top {
			return i
		}
		if y < top+height {
			if y < top+height/2 {
				return i
			}
			return i + 1
		}
	}
	return len(tops)
}
