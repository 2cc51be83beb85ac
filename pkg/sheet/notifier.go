package sheet

import (
	stderrors "errors"

	"github.com/go-drift/bottomsheet/pkg/dispatch"
	"github.com/go-drift/bottomsheet/pkg/errors"
)

// ErrDispatchRejected is reported as a warning when an executor refuses a
// callback, for example after it was closed.
var ErrDispatchRejected = stderrors.New("executor rejected callback")

// IndexChangeNotifier delivers index changes from the render context to the
// owner's callback on the control context. Delivery is fire-and-forget and
// keeps the order of Notify calls; the owner may see the same index twice.
type IndexChangeNotifier struct {
	exec     dispatch.Executor
	callback func(index int)
	trace    *recorder
}

func newIndexChangeNotifier(exec dispatch.Executor, callback func(int), trace *recorder) *IndexChangeNotifier {
	return &IndexChangeNotifier{exec: exec, callback: callback, trace: trace}
}

// Notify schedules the owner callback with index. It never blocks.
func (n *IndexChangeNotifier) Notify(index int) {
	n.trace.record(TraceIndexChange, 0)
	cb := n.callback
	if cb == nil {
		return
	}
	if !n.exec.Post(func() {
		defer errors.Recover("sheet.OnIndexChange")
		cb(index)
	}) {
		errors.Warn(&errors.SheetError{
			Op:   "sheet.IndexChangeNotifier.Notify",
			Kind: errors.KindDispatch,
			Err:  ErrDispatchRejected,
		})
	}
}
