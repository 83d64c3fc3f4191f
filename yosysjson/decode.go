package yosysjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode parses a Yosys JSON document from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("yosysjson: decoding document: %w", err)
	}
	return &f, nil
}

// DecodeFile reads and parses a Yosys JSON document from a path.
func DecodeFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("yosysjson: opening %q: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("yosysjson: %q: %w", path, err)
	}
	return doc, nil
}
