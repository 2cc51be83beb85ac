// Package dispatch schedules callbacks onto an execution context. A sheet
// runs on two contexts: a render-critical one that owns translation and
// gesture state, and a control one where owner callbacks run.
package dispatch

import "sync"

// Executor runs callbacks on the context it represents. Post never blocks
// the caller and reports whether the callback was accepted.
type Executor interface {
	Post(callback func()) bool
}

// Func adapts a plain scheduling function to an Executor.
type Func func(callback func())

// Post calls f(callback).
func (f Func) Post(callback func()) bool {
	if f == nil || callback == nil {
		return false
	}
	f(callback)
	return true
}

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())

	defaultOnce  sync.Once
	defaultQueue *Queue
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on
// the control context. Hosts with their own main-thread loop call this once
// during initialization.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback on the control context.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// Default returns the control-context executor: the registered dispatch
// function when one exists, otherwise a shared process-wide Queue.
func Default() Executor {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn != nil {
		return Func(fn)
	}
	defaultOnce.Do(func() {
		defaultQueue = NewQueue()
	})
	return defaultQueue
}

// Inline runs callbacks synchronously on the caller's goroutine.
var Inline Executor = inline{}

type inline struct{}

func (inline) Post(callback func()) bool {
	if callback == nil {
		return false
	}
	callback()
	return true
}
