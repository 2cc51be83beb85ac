package sheet

import (
	"sync"

	"github.com/google/uuid"

	"github.com/go-drift/bottomsheet/pkg/animation"
)

const traceSamplesDefault = 256

// TraceEvent names a point in a gesture or animation.
type TraceEvent string

const (
	TraceTouchDown   TraceEvent = "touch-down"
	TraceActivate    TraceEvent = "activate"
	TraceDragStart   TraceEvent = "drag-start"
	TraceEscape      TraceEvent = "escape"
	TraceRelease     TraceEvent = "release"
	TraceSnap        TraceEvent = "snap"
	TraceSettle      TraceEvent = "settle"
	TraceIndexChange TraceEvent = "index-change"
)

// TraceSample is one recorded event.
type TraceSample struct {
	Timestamp   int64      `json:"ts"`
	Session     uuid.UUID  `json:"session"`
	Event       TraceEvent `json:"event"`
	Index       int        `json:"index"`
	Translation float64    `json:"translation"`
	Velocity    float64    `json:"velocity,omitempty"`
}

// TraceTimeline is a chronological copy of a TraceBuffer.
type TraceTimeline struct {
	Samples     []TraceSample `json:"samples"`
	Overwritten int           `json:"overwritten"`
}

// TraceBuffer stores recent gesture and animation events in a ring buffer.
// A nil *TraceBuffer discards everything.
type TraceBuffer struct {
	mu          sync.RWMutex
	samples     []TraceSample
	index       int
	count       int
	overwritten int
}

// NewTraceBuffer creates a buffer holding up to capacity samples.
func NewTraceBuffer(capacity int) *TraceBuffer {
	if capacity <= 0 {
		capacity = traceSamplesDefault
	}
	return &TraceBuffer{samples: make([]TraceSample, capacity)}
}

// Capacity returns the buffer capacity.
func (b *TraceBuffer) Capacity() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Add records a sample, overwriting the oldest when full.
func (b *TraceBuffer) Add(sample TraceSample) {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.count == len(b.samples) {
		b.overwritten++
	}
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	b.mu.Unlock()
}

// Snapshot returns a chronological copy of the samples.
func (b *TraceBuffer) Snapshot() TraceTimeline {
	if b == nil {
		return TraceTimeline{}
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return TraceTimeline{Overwritten: b.overwritten}
	}
	result := make([]TraceSample, b.count)
	if b.count < len(b.samples) {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[len(b.samples)-b.index:], b.samples[:b.index])
	}
	return TraceTimeline{Samples: result, Overwritten: b.overwritten}
}

// Reset discards all samples.
func (b *TraceBuffer) Reset() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.index = 0
	b.count = 0
	b.overwritten = 0
	b.mu.Unlock()
}

// recorder stamps samples with the current session and state.
type recorder struct {
	buf     *TraceBuffer
	state   *OffsetState
	session *GestureSession
}

func (r *recorder) record(event TraceEvent, velocity float64) {
	if r == nil || r.buf == nil {
		return
	}
	sample := TraceSample{
		Timestamp:   animation.Now().UnixMilli(),
		Event:       event,
		Index:       r.state.Index(),
		Translation: r.state.Translation(),
		Velocity:    velocity,
	}
	if r.session != nil {
		sample.Session = r.session.ID
	}
	r.buf.Add(sample)
}
