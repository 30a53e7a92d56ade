package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownObject, "no object with id %d", 42)

	if err.Code != ErrCodeUnknownObject {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeUnknownObject)
	}
	if err.Message != "no object with id 42" {
		t.Errorf("Message = %q, want %q", err.Message, "no object with id 42")
	}
	want := "UNKNOWN_OBJECT: no object with id 42"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("open failed")
	err := Wrap(ErrCodeDatabankNotFound, cause, "open databank %s", "/data")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "DATABANK_NOT_FOUND: open databank /data: open failed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidTransition, "bad record")

	if !Is(err, ErrCodeInvalidTransition) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeUnknownObject) {
		t.Error("Is() should not match a different code")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidTransition) {
		t.Error("Is() should not match a plain error")
	}
}

func TestIs_WrappedChain(t *testing.T) {
	inner := New(ErrCodeMissingObject, "object 7 referenced but not loaded")
	outer := fmt.Errorf("build graph: %w", inner)

	if !Is(outer, ErrCodeMissingObject) {
		t.Error("Is() should find the code through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeMissingObject {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeMissingObject)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidCategory, "category 12 lists unknown member 99")
	if got := UserMessage(err); got != "category 12 lists unknown member 99" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := fmt.Errorf("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "boom")
	}
}

func TestIsDataIntegrity(t *testing.T) {
	cases := []struct {
		code Code
		want bool
	}{
		{ErrCodeInvalidTransition, true},
		{ErrCodeInvalidCategory, true},
		{ErrCodeInvalidObject, true},
		{ErrCodeMissingObject, true},
		{ErrCodeUnknownObject, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range cases {
		if got := IsDataIntegrity(New(tc.code, "x")); got != tc.want {
			t.Errorf("IsDataIntegrity(%s) = %v, want %v", tc.code, got, tc.want)
		}
	}
}
