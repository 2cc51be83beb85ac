package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/go-drift/bottomsheet/pkg/errors"
)

func TestDispatchWithoutRegistration(t *testing.T) {
	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch should fail with no registered function")
	}
}

func TestRegisterDispatch(t *testing.T) {
	var ran bool
	RegisterDispatch(func(cb func()) { cb() })
	defer RegisterDispatch(nil)

	if !Dispatch(func() { ran = true }) {
		t.Fatal("Dispatch should succeed")
	}
	if !ran {
		t.Error("callback did not run")
	}
	if Dispatch(nil) {
		t.Error("nil callback should not be scheduled")
	}

	ran = false
	Default().Post(func() { ran = true })
	if !ran {
		t.Error("Default should route through the registered dispatch function")
	}
}

func TestInline(t *testing.T) {
	n := 0
	Inline.Post(func() { n++ })
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
	if Inline.Post(nil) {
		t.Error("nil callback should be rejected")
	}
}

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		q.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	q.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 100 {
		t.Fatalf("ran %d callbacks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("callback %d ran at position %d", v, i)
		}
	}
	q.Close()
}

func TestQueueFlushIgnoresLaterPosts(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	gate := make(chan struct{})
	hold := make(chan struct{})
	defer close(hold)
	q.Post(func() { <-gate })

	flushed := make(chan struct{})
	go func() {
		q.Flush()
		close(flushed)
	}()
	time.Sleep(50 * time.Millisecond)
	q.Post(func() { <-hold })
	close(gate)

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("Flush waited for a callback posted after it was called")
	}
}

func TestQueueCloseDrains(t *testing.T) {
	q := NewQueue()
	done := make(chan struct{})
	count := 0
	block := make(chan struct{})
	q.Post(func() { <-block })
	for i := 0; i < 10; i++ {
		q.Post(func() { count++ })
	}
	go func() {
		q.Close()
		close(done)
	}()
	close(block)
	<-done
	if count != 10 {
		t.Errorf("count = %d, want 10 after Close", count)
	}
	if q.Post(func() {}) {
		t.Error("Post after Close should fail")
	}
}

func TestQueueRecoversPanics(t *testing.T) {
	var reported *errors.PanicError
	var mu sync.Mutex
	errors.SetHandler(&recordingHandler{onPanic: func(p *errors.PanicError) {
		mu.Lock()
		reported = p
		mu.Unlock()
	}})
	defer errors.SetHandler(nil)

	q := NewQueue()
	defer q.Close()
	ran := false
	q.Post(func() { panic("boom") })
	q.Post(func() { ran = true })
	q.Flush()

	if !ran {
		t.Error("queue should keep running after a panic")
	}
	mu.Lock()
	defer mu.Unlock()
	if reported == nil || reported.Op != "dispatch.Queue" {
		t.Errorf("panic not reported: %+v", reported)
	}
}

func TestManual(t *testing.T) {
	var m Manual
	var got []string
	m.Post(func() {
		got = append(got, "a")
		m.Post(func() { got = append(got, "c") })
	})
	m.Post(func() { got = append(got, "b") })
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if n := m.Drain(); n != 3 {
		t.Errorf("Drain ran %d, want 3", n)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("order = %v", got)
	}
}

type recordingHandler struct {
	onPanic func(*errors.PanicError)
}

func (h *recordingHandler) HandleError(*errors.SheetError)   {}
func (h *recordingHandler) HandleWarning(*errors.SheetError) {}
func (h *recordingHandler) HandlePanic(p *errors.PanicError) {
	if h.onPanic != nil {
		h.onPanic(p)
	}
}
