package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination; nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a SheetError.
func (h *LogHandler) HandleError(err *SheetError) {
	if err == nil {
		return
	}
	h.write("error", err)
}

// HandleWarning logs a non-fatal SheetError.
func (h *LogHandler) HandleWarning(err *SheetError) {
	if err == nil {
		return
	}
	h.write("warning", err)
}

func (h *LogHandler) write(level string, err *SheetError) {
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "[sheet %s] %s [%s]: %v\n", level, err.Op, err.Kind, err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
		return
	}
	fmt.Fprintf(w, "[sheet %s] %s: %v\n", level, err.Op, err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "[sheet panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[sheet panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
