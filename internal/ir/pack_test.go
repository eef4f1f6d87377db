package ir_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/vmihailenco/msgpack/v5"

	"grok/internal/diag"
	"grok/internal/ir"
)

const packProgram = `
fn fib(n: i32) -> i32 { if n < 2 { n } else { fib(n - 1) + fib(n - 2) } }
fn main() -> f64 { let s = "x"; if true && !false { 1.5 } else { 2.5 } }`

func TestPackRoundTrip(t *testing.T) {
	fns := generate(t, packProgram)

	var buf bytes.Buffer
	if err := ir.EncodePack(&buf, "test", fns); err != nil {
		t.Fatalf("encode: %v", err)
	}
	pack, err := ir.DecodePack(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if pack.Producer != "test" || pack.Schema != ir.PackSchema {
		t.Fatalf("envelope = %d %q", pack.Schema, pack.Producer)
	}
	if !reflect.DeepEqual(pack.Functions, fns) {
		t.Fatalf("round trip differs\n--- got\n%s--- want\n%s", spew.Sdump(pack.Functions), spew.Sdump(fns))
	}
}

func TestPackFile(t *testing.T) {
	fns := generate(t, packProgram)
	path := filepath.Join(t.TempDir(), "prog.gpk")
	if err := ir.WritePackFile(path, "test", fns); err != nil {
		t.Fatalf("write: %v", err)
	}
	pack, err := ir.ReadPackFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := ir.Validate(pack.Functions); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(pack.Functions) != 2 {
		t.Fatalf("got %d functions", len(pack.Functions))
	}
}

func TestPackSchemaMismatch(t *testing.T) {
	raw, err := msgpack.Marshal(&ir.Pack{Schema: ir.PackSchema + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ir.DecodePack(bytes.NewReader(raw)); !errors.Is(err, ir.ErrSchemaMismatch) {
		t.Fatalf("got %v", err)
	}
}

func TestPackNilBlockFailsValidation(t *testing.T) {
	raw, err := msgpack.Marshal(&ir.Pack{
		Schema:    ir.PackSchema,
		Functions: []*ir.Function{{Name: "main", Blocks: []*ir.Block{nil}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	pack, err := ir.DecodePack(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var irErr *ir.Error
	if err := ir.Validate(pack.Functions); !errors.As(err, &irErr) || irErr.Code != diag.IRBadOperands {
		t.Fatalf("got %v\n%s", err, spew.Sdump(pack.Functions))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	fns := generate(t, packProgram)
	var buf bytes.Buffer
	if err := ir.WriteJSON(&buf, fns); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"op": "jump-if-false"`)) {
		t.Fatalf("opcodes should be spelled out:\n%s", buf.String())
	}
	back, err := ir.ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, fns) {
		t.Fatalf("round trip differs\n%s", spew.Sdump(back))
	}
}
