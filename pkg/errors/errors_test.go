package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidSort, "unknown sort key: %q", "alphabetical")
	want := `INVALID_SORT: unknown sort key: "alphabetical"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("open failed")
	err := Wrap(ErrCodeSource, cause, "read %s", "trial.csv")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if got := err.Error(); got != "SOURCE_ERROR: read trial.csv: open failed" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAndGetCode(t *testing.T) {
	err := New(ErrCodeFileNotFound, "no such file")

	if !Is(err, ErrCodeFileNotFound) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeCache) {
		t.Error("Is should not match a different code")
	}

	// Code survives further wrapping by fmt.Errorf.
	wrapped := fmt.Errorf("loading input: %w", err)
	if GetCode(wrapped) != ErrCodeFileNotFound {
		t.Errorf("GetCode(wrapped) = %q, want %q", GetCode(wrapped), ErrCodeFileNotFound)
	}

	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on a plain error should be empty")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidStyle, "unknown style: gothic")
	if got := UserMessage(err); got != "unknown style: gothic" {
		t.Errorf("UserMessage = %q, want message without code prefix", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
