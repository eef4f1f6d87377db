package ui

import (
	"math"
	"strings"
	"testing"

	"grok/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.FileEvent)
	m := NewProgressModel("checking 2 files", []string{"a.grok", "b.grok"}, events).(*progressModel)

	steps := []driver.FileEvent{
		{Path: "a.grok", Status: driver.FileWorking, Phase: "parse"},
		{Path: "b.grok", Status: driver.FileWorking, Phase: "check"},
		{Path: "a.grok", Status: driver.FileDone},
		{Path: "missing.grok", Status: driver.FileDone},
	}
	for _, ev := range steps {
		m.Update(eventMsg(ev))
	}
	if m.items[0].status != "done" || m.items[1].status != "checking" {
		t.Fatalf("items = %+v", m.items)
	}
	if got := m.fraction(); math.Abs(got-0.7) > 1e-9 {
		t.Fatalf("fraction = %v", got)
	}

	view := m.View()
	for _, want := range []string{"checking 2 files", "a.grok", "b.grok", "checking"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: checking 2 files") {
		t.Fatalf("view after done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.grok", 20, "short.grok"},
		{"a/very/long/path/main.grok", 10, "a/very/..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
