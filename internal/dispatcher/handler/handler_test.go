package handler_test

import (
	"strings"
	"testing"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
)

func TestCommandNamespace(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"cursor.moveDown", "cursor"},
		{"editor.insertText", "editor"},
		{"plain", ""},
		{".odd", ""},
	}

	for _, tc := range tests {
		if got := (handler.Command{Name: tc.name}).Namespace(); got != tc.want {
			t.Errorf("Namespace(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(cmd handler.Command) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(handler.Command{Name: "test"})

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("anything") || fn.Priority() != 0 {
		t.Error("HandlerFunc should accept everything at priority 0")
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(handler.Command{Name: "test"})

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	bnh := handler.NewBaseNamespaceHandler("editor")
	var got string
	bnh.Register("editor.insertText", func(cmd handler.Command) handler.Result {
		got = cmd.Text
		return handler.Success()
	})

	if bnh.Namespace() != "editor" {
		t.Errorf("Namespace() = %q", bnh.Namespace())
	}
	if !bnh.CanHandle("editor.insertText") || bnh.CanHandle("editor.paste") {
		t.Error("CanHandle mismatch")
	}

	adapter := handler.NewNamespaceAdapter(bnh)
	if r := adapter.Handle(handler.Command{Name: "editor.insertText", Text: "x"}); !r.IsOK() || got != "x" {
		t.Errorf("adapter dispatch: %v, text %q", r.Status, got)
	}

	r := bnh.HandleCommand(handler.Command{Name: "editor.paste"})
	if !r.IsError() || !strings.Contains(r.Error.Error(), "editor.paste") {
		t.Errorf("unknown command: %+v", r)
	}
	if len(bnh.Commands()) != 1 {
		t.Errorf("Commands() = %v", bnh.Commands())
	}
}
