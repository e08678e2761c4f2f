package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/buffer"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusCancelled, "cancelled"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestSuccess(t *testing.T) {
	result := handler.Success()

	if !result.IsOK() {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if result.Error != nil {
		t.Error("expected nil error")
	}
}

func TestSuccessWithEdits(t *testing.T) {
	edit := handler.Edit{Range: buffer.Range{Start: 1, End: 2}, NewText: "x", OldText: "y"}
	result := handler.SuccessWithEdits(edit)

	if len(result.Edits) != 1 || result.Edits[0] != edit {
		t.Errorf("edits = %+v", result.Edits)
	}

	more := result.WithEdits(handler.Edit{NewText: "z"})
	if len(more.Edits) != 2 || len(result.Edits) != 1 {
		t.Error("WithEdits should not modify the original")
	}
}

func TestNoOpWithReason(t *testing.T) {
	reason := errors.New("nothing found")
	result := handler.NoOpWithReason(reason)

	if result.Status != handler.StatusNoOp {
		t.Errorf("expected StatusNoOp, got %v", result.Status)
	}
	if result.IsError() {
		t.Error("a no-op is not an error")
	}
	if !errors.Is(result.Error, reason) {
		t.Errorf("reason not kept: %v", result.Error)
	}
}

func TestErrorf(t *testing.T) {
	base := errors.New("base")
	result := handler.Errorf("wrapped: %w", base)

	if !result.IsError() {
		t.Errorf("expected StatusError, got %v", result.Status)
	}
	if !errors.Is(result.Error, base) {
		t.Error("expected error to wrap base")
	}
}

func TestWithMessage(t *testing.T) {
	original := handler.NoOp()
	withMsg := original.WithMessage("idle")

	if withMsg.Message != "idle" {
		t.Errorf("expected 'idle', got %q", withMsg.Message)
	}
	if original.Message != "" {
		t.Error("original should not be modified")
	}
	if handler.CancelledWithMessage("stop").Status != handler.StatusCancelled {
		t.Error("expected StatusCancelled")
	}
}
