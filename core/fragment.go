package core

import "fmt"

// Position identifies the source location a record, fragment or warning
// originated from. Every recoverable problem the pipeline reports carries a
// Position so surrounding tooling never has to re-derive it.
type Position struct {
	Filename string `json:"filename" msgpack:"filename"`
	Line     int    `json:"line" msgpack:"line"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// Shift returns a copy of the position moved down by n lines.
func (p Position) Shift(n int) Position {
	return Position{Filename: p.Filename, Line: p.Line + n}
}

// Fragment is one raw fact extracted from a single annotation occurrence
// within a doc comment. Multiple fragments may share a Key within one
// comment; the combiner groups them and hands each group to the owning tag
// exactly once.
type Fragment struct {
	// Key is the storage key the combined data is grouped under.
	Key string
	// Fields holds the values the parse routine interpreted from the
	// annotation text (type token, name, default, ...).
	Fields Record
	// Doc accumulates free documentation text belonging to this fragment.
	Doc string
	// Multiline marks that all free text up to the next annotation marker
	// belongs to this fragment's Doc.
	Multiline bool
	// Pos is the source position of the annotation marker.
	Pos Position
}

// AppendDoc adds free text to the fragment's documentation field.
func (f *Fragment) AppendDoc(text string) {
	if text == "" {
		return
	}
	if f.Doc == "" {
		f.Doc = text
		return
	}
	f.Doc += "\n" + text
}

// Expr is the opaque value-expression handle the declaration walker attaches
// to each property of a configuration literal. Declaration-parse routines
// know how to interpret it; the pipeline core treats it as a black box.
type Expr struct {
	// Raw is the literal source text of the expression.
	Raw string
	// Value is the evaluated constant, when the walker could produce one.
	// Nil when the expression is not a constant.
	Value any
	// Pos is the source position of the expression.
	Pos Position
}

// StringValue returns the expression as a string: the evaluated constant if
// it is one, otherwise the raw source text.
func (e Expr) StringValue() string {
	if s, ok := e.Value.(string); ok {
		return s
	}
	return e.Raw
}

// BoolValue returns the expression as a bool. Non-constant expressions fall
// back to comparing the raw text against "true".
func (e Expr) BoolValue() bool {
	if b, ok := e.Value.(bool); ok {
		return b
	}
	return e.Raw == "true"
}

// AnyValue returns the evaluated constant when present, otherwise the raw
// source text.
func (e Expr) AnyValue() any {
	if e.Value != nil {
		return e.Value
	}
	return e.Raw
}

// ConfigLiteral is the configuration object of one structural class
// declaration: a mapping from property name to value expression, as produced
// by the declaration walker.
type ConfigLiteral map[string]Expr

// Warning is a positioned, recoverable problem encountered while processing
// one unit. Warnings never abort the unit; they are collected on its result.
type Warning struct {
	Pos Position
	Err error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Pos, w.Err)
}
