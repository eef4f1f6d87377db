package ir

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// PackSchema is bumped whenever the encoded layout of Function changes.
// Packs are a same-build exchange format, not a stable bytecode.
const PackSchema uint16 = 1

// ErrSchemaMismatch is returned for packs written with another PackSchema.
var ErrSchemaMismatch = errors.New("ir: pack schema mismatch")

// Pack is the msgpack envelope around a lowered program.
type Pack struct {
	Schema    uint16      `msgpack:"schema"`
	Producer  string      `msgpack:"producer"`
	Functions []*Function `msgpack:"functions"`
}

// EncodePack writes fns as a msgpack Pack. producer identifies the writer.
func EncodePack(w io.Writer, producer string, fns []*Function) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&Pack{Schema: PackSchema, Producer: producer, Functions: fns})
}

// DecodePack reads a Pack and checks its schema.
func DecodePack(r io.Reader) (*Pack, error) {
	var p Pack
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("ir: decode pack: %w", err)
	}
	if p.Schema != PackSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, p.Schema, PackSchema)
	}
	return &p, nil
}

// WritePackFile writes the pack to a temporary file next to path and
// renames it into place.
func WritePackFile(path, producer string, fns []*Function) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".grok-pack-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = EncodePack(f, producer, fns); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadPackFile decodes the pack stored at path.
func ReadPackFile(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePack(f)
}
