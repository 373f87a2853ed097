package duckdoc

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/duckdoc/go-duckdoc/core"
)

// exportedResult is the stable wire shape of a Result for handoff to page
// assemblers.
type exportedResult struct {
	Record     core.Record `msgpack:"record"`
	HTML       string      `msgpack:"html"`
	Filename   string      `msgpack:"filename"`
	Line       int         `msgpack:"line"`
	Incomplete bool        `msgpack:"incomplete"`
}

// EncodeMsgpack serializes the result's record, rendered HTML and source
// position into a compact binary form. Warnings are a processing-time
// concern and are not exported.
func (r *Result) EncodeMsgpack() ([]byte, error) {
	return msgpack.Marshal(&exportedResult{
		Record:     r.Record,
		HTML:       r.HTML,
		Filename:   r.Pos.Filename,
		Line:       r.Pos.Line,
		Incomplete: r.Incomplete,
	})
}

// DecodeResult restores a result previously encoded with EncodeMsgpack.
func DecodeResult(data []byte) (*Result, error) {
	var exported exportedResult
	if err := msgpack.Unmarshal(data, &exported); err != nil {
		return nil, err
	}
	return &Result{
		Record:     core.ToRecord(exported.Record),
		HTML:       exported.HTML,
		Pos:        core.Position{Filename: exported.Filename, Line: exported.Line},
		Incomplete: exported.Incomplete,
	}, nil
}
