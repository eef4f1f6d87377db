package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"grok/internal/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want trace.Level
		ok   bool
	}{
		{"off", trace.LevelOff, true},
		{"PHASE", trace.LevelPhase, true},
		{"Detail", trace.LevelDetail, true},
		{"debug", trace.LevelDebug, true},
		{"loud", trace.LevelOff, false},
	}
	for _, tt := range tests {
		got, err := trace.ParseLevel(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.ScopeDriver, false},
		{trace.LevelError, trace.ScopeDriver, false},
		{trace.LevelPhase, trace.ScopePass, true},
		{trace.LevelPhase, trace.ScopeModule, false},
		{trace.LevelDetail, trace.ScopeModule, true},
		{trace.LevelDetail, trace.ScopeNode, false},
		{trace.LevelDebug, trace.ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff, Mode: trace.ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if tr != trace.Nop || tr.Enabled() {
		t.Fatalf("got %T", tr)
	}
	span := trace.Begin(tr, trace.ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatal("span from a disabled tracer should be inert")
	}
}

func TestStreamText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelDetail, Mode: trace.ModeStream, Format: trace.FormatText, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	root := trace.Begin(tr, trace.ScopeDriver, "compile", 0)
	child := trace.Begin(tr, trace.ScopeModule, "check fn:main", root.ID())
	child.WithExtra("constraints", "3").End("")
	trace.Begin(tr, trace.ScopeNode, "hidden", root.ID()).End("")
	root.End("ok")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	wants := []string{"-> compile", "    -> check fn:main", "<- check fn:main {constraints=3}", "<- compile (ok)"}
	for i, want := range wants {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatNDJSON)
	span := trace.Begin(tr, trace.ScopePass, "parse", 7)
	span.End("done")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev struct {
			Kind     string `json:"kind"`
			Scope    string `json:"scope"`
			Name     string `json:"name"`
			ParentID uint64 `json:"parent_id"`
			Detail   string `json:"detail"`
		}
		if err := dec.Decode(&ev); err != nil {
			t.Fatal(err)
		}
		if ev.Name != "parse" || ev.Scope != "pass" || ev.ParentID != 7 {
			t.Errorf("unexpected event %+v", ev)
		}
		kinds = append(kinds, ev.Kind+":"+ev.Detail)
	}
	if strings.Join(kinds, ",") != "begin:,end:done" {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestRingWraps(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		trace.Point(ring, trace.ScopeNode, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("got %d events", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %s, want %s", i, snap[i].Name, want)
		}
	}
	if snap[0].Seq >= snap[2].Seq {
		t.Errorf("events out of order: %d then %d", snap[0].Seq, snap[2].Seq)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, trace.FormatText); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Fatalf("dump wrote %d lines", n)
	}
}

func TestBothModeFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*trace.MultiTracer)
	if !ok {
		t.Fatalf("got %T, want *MultiTracer", tr)
	}
	trace.Begin(tr, trace.ScopeDriver, "run", 0).End("")

	ring, ok := multi.Ring()
	if !ok {
		t.Fatal("no ring tracer")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events", n)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("stream wrote %d lines", n)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if trace.FromContext(ctx) != trace.Nop {
		t.Fatal("empty context should yield Nop")
	}
	ring := trace.NewRingTracer(4, trace.LevelPhase)
	ctx = trace.WithTracer(ctx, ring)
	if trace.FromContext(ctx) != ring {
		t.Fatal("tracer lost")
	}
	span := trace.Begin(ring, trace.ScopeDriver, "root", 0)
	ctx = span.Context(ctx)
	if got := trace.CurrentSpan(ctx).SpanID; got != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", got, span.ID())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]trace.Format{"": trace.FormatAuto, "text": trace.FormatText, "ndjson": trace.FormatNDJSON} {
		got, err := trace.ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := trace.ParseFormat("chrome"); err == nil {
		t.Error("chrome should be rejected")
	}
}
