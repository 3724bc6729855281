package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindAllocation, "allocation"},
		{KindMarshal, "marshal"},
		{KindNative, "native"},
		{KindInvalidHandle, "invalid-handle"},
		{KindInvalidState, "invalid-state"},
		{KindSceneParse, "scene-parse"},
		{KindInvalidBuffer, "invalid-buffer"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestNativeKeepsCodeVerbatim(t *testing.T) {
	if err := Native("op", 0); err != nil {
		t.Fatalf("Native(0) = %v, want nil", err)
	}
	if err := Native("op", 3); err != nil {
		t.Fatalf("Native(3) = %v, want nil", err)
	}

	err := Native("nopegl.Context.Draw", -1234)
	code, ok := Code(err)
	if !ok || code != -1234 {
		t.Fatalf("Code() = %d, %v; want -1234, true", code, ok)
	}
	if KindOf(err) != KindNative {
		t.Errorf("KindOf() = %v, want native", KindOf(err))
	}

	wrapped := fmt.Errorf("draw frame: %w", err)
	code, ok = Code(wrapped)
	if !ok || code != -1234 {
		t.Errorf("Code(wrapped) = %d, %v; want -1234, true", code, ok)
	}
}

func TestErrorString(t *testing.T) {
	err := Native("nopegl.Context.Resize", -5)
	want := "nopegl.Context.Resize [native] code=-5"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = New("nopegl.Context.Draw", KindInvalidHandle, ErrInvalidHandle)
	if !strings.Contains(err.Error(), "invalid-handle") {
		t.Errorf("Error() = %q, should mention kind", err.Error())
	}
	if !Is(err, ErrInvalidHandle) {
		t.Error("expected errors.Is to find ErrInvalidHandle")
	}
	if _, ok := Code(err); ok {
		t.Error("misuse errors should not carry a native code")
	}
}

func TestCodeOnPlainError(t *testing.T) {
	if _, ok := Code(fmt.Errorf("plain")); ok {
		t.Error("Code() on a plain error should report false")
	}
	if _, ok := Code(nil); ok {
		t.Error("Code(nil) should report false")
	}
}

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func TestReport(t *testing.T) {
	var captured *Error
	SetHandler(&testHandler{onError: func(err *Error) { captured = err }})
	defer SetHandler(nil)

	Report(&Error{Op: "nopegl.Context.ResetScene", Kind: KindNative, Code: -7})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
	Report(nil)
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("logbridge.engine")
		panic("sink exploded")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered")
	}
	if captured.Op != "logbridge.engine" || captured.Value != "sink exploded" {
		t.Errorf("captured = %+v", captured)
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(&testHandler{})
	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestReportNative(t *testing.T) {
	var got []*Error
	SetHandler(&testHandler{onError: func(err *Error) { got = append(got, err) }})
	defer SetHandler(nil)

	ReportNative("nopegl.Context.ResetScene", 0)
	ReportNative("nopegl.Context.ResetScene", 3)
	ReportNative("nopegl.Context.ResetScene", -5)

	if len(got) != 1 {
		t.Fatalf("reported %d errors, want 1", len(got))
	}
	if got[0].Kind != KindNative || got[0].Code != -5 || got[0].Timestamp.IsZero() {
		t.Errorf("reported = %+v", got[0])
	}
}

func TestCaptureStack(t *testing.T) {
	s := CaptureStack()
	if !strings.Contains(s, "TestCaptureStack") {
		t.Errorf("stack does not start at the caller:\n%s", s)
	}
	if strings.Contains(s, "errors.stack") {
		t.Errorf("stack includes capture internals:\n%s", s)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf, Verbose: true}
	h.HandleError(&Error{Op: "op", Kind: KindNative, Code: -2})
	h.HandlePanic(&PanicError{Op: "cb", Value: "boom", StackTrace: "frame"})

	out := buf.String()
	for _, want := range []string{"[nopegl error] op [native] code=-2", "[nopegl panic] cb: boom", "Stack trace:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
