package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

var errSentinel = stderrors.New("sentinel")

func TestSheetErrorString(t *testing.T) {
	err := &SheetError{
		Op:   "sheet.ResolveDetents",
		Kind: KindConfig,
		Err:  &ConfigError{Field: "detents", Reason: "must not be empty"},
	}
	got := err.Error()
	want := "sheet.ResolveDetents [config]: invalid detents: must not be empty"
	if got != want {
		t.Errorf("SheetError.Error() = %q, want %q", got, want)
	}
}

func TestSheetErrorUnwrapsToSentinel(t *testing.T) {
	err := Config("sheet.NewSheet", &ConfigError{Field: "detents", Reason: "empty", Err: errSentinel})
	if !stderrors.Is(err, errSentinel) {
		t.Error("expected errors.Is to find the sentinel through SheetError and ConfigError")
	}
	var cfg *ConfigError
	if !stderrors.As(err, &cfg) {
		t.Fatal("expected errors.As to find the ConfigError")
	}
	if cfg.Field != "detents" {
		t.Errorf("Field = %q, want %q", cfg.Field, "detents")
	}
	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want config", err.Kind)
	}
}

func TestConfigErrorWithoutField(t *testing.T) {
	err := &ConfigError{Reason: "bad"}
	if err.Error() != "bad" {
		t.Errorf("ConfigError.Error() = %q, want %q", err.Error(), "bad")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindScroll, "scroll"},
		{KindGesture, "gesture"},
		{KindDispatch, "dispatch"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "sheet.OnIndexChange"
	if got, want := err.Error(), "panic in sheet.OnIndexChange: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *SheetError
	handler := &testHandler{onError: func(err *SheetError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&SheetError{Op: "test.op", Kind: KindConfig, Err: errSentinel})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestWarn(t *testing.T) {
	var warned, errored int
	handler := &testHandler{
		onWarning: func(*SheetError) { warned++ },
		onError:   func(*SheetError) { errored++ },
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Warn(&SheetError{Op: "sheet.ScrollCoordinator.Attach", Kind: KindScroll, Err: errSentinel})
	Warn(nil)

	if warned != 1 {
		t.Errorf("expected 1 warning, got %d", warned)
	}
	if errored != 0 {
		t.Errorf("expected warnings not to reach HandleError, got %d", errored)
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback received %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleWarning(&SheetError{Op: "sheet.ScrollCoordinator.Attach", Kind: KindScroll, Err: errSentinel})
	h.HandleError(&SheetError{Op: "sheet.NewSheet", Kind: KindConfig, Err: errSentinel})
	h.HandlePanic(&PanicError{Op: "sheet.OnIndexChange", Value: "boom"})

	out := buf.String()
	for _, want := range []string{
		"[sheet warning] sheet.ScrollCoordinator.Attach: sentinel",
		"[sheet error] sheet.NewSheet: sentinel",
		"[sheet panic] sheet.OnIndexChange: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q should contain %q", out, want)
		}
	}
}

func TestLogHandlerVerboseIncludesKind(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf, Verbose: true}
	h.HandleError(&SheetError{Op: "op", Kind: KindGesture, Err: errSentinel, StackTrace: "frame"})
	if !strings.Contains(buf.String(), "op [gesture]: sentinel") {
		t.Errorf("verbose output missing kind: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Stack trace:\nframe") {
		t.Errorf("verbose output missing stack: %q", buf.String())
	}
}

type testHandler struct {
	onError   func(*SheetError)
	onWarning func(*SheetError)
	onPanic   func(*PanicError)
}

func (h *testHandler) HandleError(err *SheetError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandleWarning(err *SheetError) {
	if h.onWarning != nil {
		h.onWarning(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
