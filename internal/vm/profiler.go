package vm

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profiler counts calls per function. Counts only grow.
type Profiler struct {
	threshold uint64
	counts    map[string]uint64
}

func NewProfiler(threshold int) *Profiler {
	if threshold < 0 {
		threshold = 0
	}
	return &Profiler{threshold: uint64(threshold), counts: make(map[string]uint64)}
}

// Record counts one call of name.
func (p *Profiler) Record(name string) {
	p.counts[name]++
}

func (p *Profiler) Count(name string) uint64 { return p.counts[name] }

func (p *Profiler) Threshold() uint64 { return p.threshold }

// IsHotspot reports whether name has been called more than the threshold.
func (p *Profiler) IsHotspot(name string) bool {
	return p.counts[name] > p.threshold
}

// Hotspots lists hot functions by name.
func (p *Profiler) Hotspots() []string {
	var out []string
	for name := range p.counts {
		if p.IsHotspot(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// FuncCalls is one row of a profile report.
type FuncCalls struct {
	Name    string `json:"name" yaml:"name"`
	Calls   uint64 `json:"calls" yaml:"calls"`
	Hotspot bool   `json:"hotspot" yaml:"hotspot"`
}

// Report is a snapshot of the profiler, most called first.
type Report struct {
	RunID     string      `json:"run_id" yaml:"run_id"`
	Threshold uint64      `json:"threshold" yaml:"threshold"`
	Functions []FuncCalls `json:"functions" yaml:"functions"`
	Hotspots  []string    `json:"hotspots" yaml:"hotspots"`
}

func (p *Profiler) Report(runID string) Report {
	r := Report{RunID: runID, Threshold: p.threshold, Hotspots: p.Hotspots()}
	for name, n := range p.counts {
		r.Functions = append(r.Functions, FuncCalls{Name: name, Calls: n, Hotspot: n > p.threshold})
	}
	sort.Slice(r.Functions, func(i, j int) bool {
		a, b := r.Functions[i], r.Functions[j]
		if a.Calls != b.Calls {
			return a.Calls > b.Calls
		}
		return a.Name < b.Name
	})
	if r.Hotspots == nil {
		r.Hotspots = []string{}
	}
	if r.Functions == nil {
		r.Functions = []FuncCalls{}
	}
	return r
}

// Write renders the report as text, json or yaml.
func (r Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return r.writeText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown profile format %q (want text, json or yaml)", format)
	}
}

func (r Report) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "profile %s (hotspot threshold %d)\n", r.RunID, r.Threshold); err != nil {
		return err
	}
	for _, f := range r.Functions {
		mark := ""
		if f.Hotspot {
			mark = "  hot"
		}
		if _, err := fmt.Fprintf(w, "  %8d  %s%s\n", f.Calls, f.Name, mark); err != nil {
			return err
		}
	}
	return nil
}
