package driver

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"gul/internal/source"
)

// foreignBundleVersion is bumped whenever ForeignRecord changes shape.
const foreignBundleVersion = 1

// ForeignRecord is one non-Rust foreign block extracted from a file, kept
// for the host runtime that executes it.
type ForeignRecord struct {
	File   string `msgpack:"file"`
	Tag    string `msgpack:"tag"`
	Body   string `msgpack:"body"`
	Line   uint32 `msgpack:"line"`
	Column uint32 `msgpack:"col"`
}

type foreignBundle struct {
	Version int             `msgpack:"v"`
	Records []ForeignRecord `msgpack:"records"`
}

// ForeignRecords lists the foreign blocks of successfully generated files.
// Rust blocks are already part of the generated source and are skipped.
func ForeignRecords(fileSet *source.FileSet, results []*FileResult) []ForeignRecord {
	var out []ForeignRecord
	for _, r := range results {
		if r == nil || r.Output == nil {
			continue
		}
		file := fileSet.Get(r.FileID)
		for _, block := range r.Output.Foreign {
			if block.Tag == "rust" {
				continue
			}
			pos := fileSet.Position(block.Span)
			out = append(out, ForeignRecord{
				File:   displayPath(fileSet, file),
				Tag:    block.Tag,
				Body:   block.Body,
				Line:   pos.Line,
				Column: pos.Col,
			})
		}
	}
	return out
}

// WriteForeignBundle encodes records as a versioned msgpack document.
func WriteForeignBundle(w io.Writer, records []ForeignRecord) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(foreignBundle{Version: foreignBundleVersion, Records: records})
}

// ReadForeignBundle decodes a bundle written by WriteForeignBundle.
func ReadForeignBundle(r io.Reader) ([]ForeignRecord, error) {
	var bundle foreignBundle
	if err := msgpack.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode foreign bundle: %w", err)
	}
	if bundle.Version != foreignBundleVersion {
		return nil, fmt.Errorf("foreign bundle version %d, want %d", bundle.Version, foreignBundleVersion)
	}
	return bundle.Records, nil
}

// EncodeForeignBundle is WriteForeignBundle into a byte slice.
func EncodeForeignBundle(records []ForeignRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteForeignBundle(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
