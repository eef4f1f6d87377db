package observ_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"grok/internal/observ"
)

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	parse := tm.Begin("parse")
	tm.End(parse, "items=2")
	check := tm.Begin("check")
	tm.End(check, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "items=2" {
		t.Fatalf("report = %+v", r)
	}
	if !strings.Contains(r.Summary(), "// items=2") || !strings.Contains(r.Summary(), "total") {
		t.Fatalf("summary:\n%s", r.Summary())
	}

	var buf bytes.Buffer
	if err := r.Write(&buf, "json"); err != nil {
		t.Fatal(err)
	}
	var back observ.Report
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil || len(back.Phases) != 2 {
		t.Fatalf("json round trip: %v %+v", err, back)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *observ.Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if idx != -1 || len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer should record nothing")
	}
}
