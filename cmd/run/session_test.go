package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine/gojs"
	"github.com/wippyai/js-runtime/runtime"
)

func newTestSession(t *testing.T) (*session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	s, err := newSession(runtime.Config{Engine: gojs.Name}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	t.Cleanup(s.close)
	return s, &stdout, &stderr
}

func TestSession_Console(t *testing.T) {
	s, stdout, stderr := newTestSession(t)

	src := `
		log("it works", 42)
		console.log({a: 1}, [1])
		console.error("bad", null)
		console.warn("careful")
	`
	if _, err := s.eval("test.js", src); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := stdout.String(); got != "it works 42\n{a: 1} {0: 1}\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := stderr.String(); got != "bad null\ncareful\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestSession_UnknownEngine(t *testing.T) {
	if _, err := newSession(runtime.Config{Engine: "nope"}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected an error for an unknown engine")
	}
}

func TestDescribe(t *testing.T) {
	s, _, _ := newTestSession(t)

	tests := []struct {
		src  string
		want string
	}{
		{"throw new TypeError('nope')", "Uncaught TypeError: nope"},
		{"throw new Error()", "Uncaught Error"},
		{"throw 'text'", "Uncaught text"},
		{"throw {code: 1}", "Uncaught {code: 1}"},
	}
	for _, tt := range tests {
		_, err := s.eval("test.js", tt.src)
		if err == nil {
			t.Fatalf("%s did not throw", tt.src)
		}
		if got := describe(err, false); got != tt.want {
			t.Errorf("describe(%s) = %q, want %q", tt.src, got, tt.want)
		}
	}

	_, err := s.eval("trace.js", "throw new Error('deep')")
	if got := describe(err, true); !strings.Contains(got, "trace.js") {
		t.Errorf("verbose describe has no stack: %q", got)
	}

	if got := describe(stderrors.New("plain"), true); got != "plain" {
		t.Errorf("describe(plain) = %q", got)
	}
}

func TestInteractiveModel(t *testing.T) {
	var out bytes.Buffer
	s, err := newSession(runtime.Config{Engine: gojs.Name, Logger: zap.NewNop()}, &out, &out)
	if err != nil {
		t.Fatal(err)
	}
	defer s.close()
	m := newInteractiveModel(s, &out, false)

	submit := func(src string) tea.Cmd {
		m.input.SetValue(src)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return cmd
	}

	submit("let n = 40")
	submit("log('side effect'); n + 2")
	submit("missing()")

	if len(m.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(m.entries))
	}
	if e := m.entries[1]; e.result != "42" || e.output != "side effect" || e.err {
		t.Errorf("entry = %+v", e)
	}
	if e := m.entries[2]; !e.err || !strings.Contains(e.result, "ReferenceError") {
		t.Errorf("error entry = %+v", e)
	}
	if m.input.Value() != "" {
		t.Error("input not cleared after enter")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "missing()" {
		t.Errorf("history up = %q", m.input.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" {
		t.Errorf("history down past end = %q", m.input.Value())
	}

	if !strings.Contains(m.View(), "side effect") {
		t.Error("view does not show console output")
	}

	submit(".clear")
	if len(m.entries) != 0 {
		t.Error(".clear kept entries")
	}
	if cmd := submit(".exit"); cmd == nil {
		t.Error(".exit did not quit")
	}
}
