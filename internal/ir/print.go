package ir

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable listing of fns in the given order.
func Dump(w io.Writer, fns []*Function) error {
	bw := bufio.NewWriter(w)
	for i, f := range fns {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		dumpFunc(bw, f)
	}
	return bw.Flush()
}

func dumpFunc(w io.Writer, f *Function) {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
		if p.Type != "" {
			params[i] += ": " + p.Type
		}
	}
	fmt.Fprintf(w, "fn %s(%s)", f.Name, strings.Join(params, ", "))
	if f.Result != "" {
		fmt.Fprintf(w, " -> %s", f.Result)
	}
	fmt.Fprintln(w, " {")
	for _, b := range f.Blocks {
		fmt.Fprintf(w, "  %s:\n", b.Label)
		for _, in := range b.Instrs {
			fmt.Fprintf(w, "    %s\n", in)
		}
	}
	fmt.Fprintln(w, "}")
}

// String renders one function the way Dump does.
func (f *Function) String() string {
	var sb strings.Builder
	dumpFunc(&sb, f)
	return sb.String()
}

// WriteJSON writes fns as indented JSON with opcodes spelled out.
func WriteJSON(w io.Writer, fns []*Function) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fns)
}

// ReadJSON is the inverse of WriteJSON.
func ReadJSON(r io.Reader) ([]*Function, error) {
	var fns []*Function
	if err := json.NewDecoder(r).Decode(&fns); err != nil {
		return nil, fmt.Errorf("ir: decode json: %w", err)
	}
	return fns, nil
}
