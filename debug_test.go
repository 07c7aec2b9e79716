package shapeshifter

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_DisposedChildPanics(t *testing.T) {
	s := NewScene(Size{})
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewGroup("parent")
	child := NewRectangle("child", 10, 10)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed shape, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	s := NewScene(Size{})
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	parent := NewGroup("parent")
	parent.Dispose()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on AddChild to a disposed parent")
		}
	}()
	parent.AddChild(NewRectangle("child", 1, 1))
}

func TestReleaseMode_DisposedShapeNoPanic(t *testing.T) {
	s := NewScene(Size{})
	s.SetDebugMode(false)

	parent := NewGroup("parent")
	child := NewRectangle("child", 1, 1)
	child.Dispose()

	// Without debug mode the checks are skipped.
	parent.AddChild(child)
	s.Enqueue(child, true)
}

func TestDebugMode_StepLogsStats(t *testing.T) {
	s := NewScene(Size{Width: 100, Height: 100})
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)
	s.Enqueue(NewRectangle("a", 1, 1), true)
	s.Enqueue(NewRectangle("b", 1, 1), false)

	output := captureStderr(t, func() {
		if _, err := s.Step(&Frame{}); err != nil {
			t.Error(err)
		}
		s.Render(&fakeBackend{})
	})

	if !strings.Contains(output, "[shapeshifter] update:") {
		t.Errorf("expected update stats in stderr, got: %q", output)
	}
	if !strings.Contains(output, "shapes: 2 | active: 1") {
		t.Errorf("expected shape counts in stderr, got: %q", output)
	}
	if !strings.Contains(output, "[shapeshifter] render:") {
		t.Errorf("expected render stats in stderr, got: %q", output)
	}
}

func TestReleaseMode_NoLogs(t *testing.T) {
	s := NewScene(Size{Width: 100, Height: 100})
	output := captureStderr(t, func() {
		if _, err := s.Step(&Frame{}); err != nil {
			t.Error(err)
		}
		s.Render(&fakeBackend{})
	})
	if output != "" {
		t.Errorf("expected no stderr output, got: %q", output)
	}
}
