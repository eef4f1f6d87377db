package vm_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"grok/internal/vm"
)

func sampleReport() vm.Report {
	p := vm.NewProfiler(2)
	for range 3 {
		p.Record("hot")
	}
	p.Record("cold")
	return p.Report("run-1")
}

func TestReportOrdering(t *testing.T) {
	r := sampleReport()
	if len(r.Functions) != 2 || r.Functions[0].Name != "hot" || !r.Functions[0].Hotspot {
		t.Fatalf("functions = %+v", r.Functions)
	}
	if r.Functions[1].Hotspot {
		t.Fatalf("cold marked hot")
	}
	if len(r.Hotspots) != 1 || r.Hotspots[0] != "hot" {
		t.Fatalf("hotspots = %v", r.Hotspots)
	}
}

func TestReportFormats(t *testing.T) {
	r := sampleReport()

	var buf bytes.Buffer
	if err := r.Write(&buf, "json"); err != nil {
		t.Fatal(err)
	}
	var fromJSON vm.Report
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json: %v\n%s", err, buf.String())
	}
	if fromJSON.RunID != "run-1" || len(fromJSON.Functions) != 2 {
		t.Fatalf("json report = %+v", fromJSON)
	}

	buf.Reset()
	if err := r.Write(&buf, "yaml"); err != nil {
		t.Fatal(err)
	}
	var fromYAML vm.Report
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml: %v\n%s", err, buf.String())
	}
	if fromYAML.Threshold != 2 || fromYAML.Functions[0].Calls != 3 {
		t.Fatalf("yaml report = %+v", fromYAML)
	}

	buf.Reset()
	if err := r.Write(&buf, "text"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "3  hot  hot") {
		t.Fatalf("text:\n%s", buf.String())
	}

	if err := r.Write(&buf, "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want vm.Value
	}{
		{"42", vm.IntValue(42)},
		{"-7", vm.IntValue(-7)},
		{"0x10", vm.IntValue(16)},
		{"2.5", vm.FloatValue(2.5)},
		{"true", vm.BoolValue(true)},
		{"false", vm.BoolValue(false)},
		{"hello", vm.StringValue("hello")},
		{"T", vm.StringValue("T")},
	}
	for _, tt := range tests {
		if got := vm.ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
