package dispatch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is bumped whenever the payload layout changes.
const SchemaVersion uint16 = 1

type payload struct {
	Schema uint16   `msgpack:"schema"`
	Tables []*Table `msgpack:"tables"`
}

// Encode writes tables as one msgpack payload.
func Encode(w io.Writer, tables []*Table) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&payload{Schema: SchemaVersion, Tables: tables})
}

// Decode reads a payload written by Encode, rejecting other schema versions.
func Decode(r io.Reader) ([]*Table, error) {
	var p payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("dispatch: decode: %w", err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("dispatch: schema version %d, want %d", p.Schema, SchemaVersion)
	}
	return p.Tables, nil
}

// WriteFile encodes tables into path, replacing it atomically.
func WriteFile(path string, tables []*Table) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "dispatch-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if err = Encode(f, tables); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadFile decodes the payload stored at path.
func ReadFile(path string) ([]*Table, error) {
	// #nosec G304 -- path is supplied by the user on the command line
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
