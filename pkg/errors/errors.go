// Package errors provides structured error reporting for the bottom sheet
// engine.
//
// Configuration mistakes (an empty detent set, an unknown detent kind) are
// returned synchronously as [*SheetError] values of kind [KindConfig]. Non-fatal
// misuse, such as attaching a second scrollable, is reported through [Warn].
// Panics raised by owner callbacks are recovered and routed to [ReportPanic].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid sheet configuration.
	KindConfig
	// KindScroll indicates misuse of the scroll coordination layer.
	KindScroll
	// KindGesture indicates an inconsistent gesture event stream.
	KindGesture
	// KindDispatch indicates a failure to hand work to another execution context.
	KindDispatch
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindScroll:
		return "scroll"
	case KindGesture:
		return "gesture"
	case KindDispatch:
		return "dispatch"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// SheetError represents a structured error raised by the sheet engine.
type SheetError struct {
	// Op is the operation that failed (e.g., "sheet.ResolveDetents").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// ConfigError describes a single invalid configuration field.
type ConfigError struct {
	// Field names the offending setting (e.g., "detents[2]").
	Field string
	// Reason explains what is wrong with it.
	Reason string
	// Err is an optional sentinel the caller can match with errors.Is.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sheet.OnIndexChange").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Config builds a [KindConfig] SheetError for op.
func Config(op string, err error) *SheetError {
	return &SheetError{Op: op, Kind: KindConfig, Err: err}
}

// ErrorHandler receives errors reported by the sheet engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *SheetError)
	// HandleWarning is called for recoverable misuse that does not stop the sheet.
	HandleWarning(err *SheetError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
