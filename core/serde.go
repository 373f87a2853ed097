package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// KindKey stores the resolved kind of a record ("class" or a member kind).
	// It is fixed before merge begins and never changes during merge.
	KindKey = "@kind"
)

var empty = struct{}{}
var printableAttrs = map[string]struct{}{
	"name":       empty,
	"owner":      empty,
	"type":       empty,
	"extends":    empty,
	"singleton":  empty,
	"default":    empty,
	"visibility": empty,
	"since":      empty,
	"deprecated": empty,
	"static":     empty,
	"readonly":   empty,
}

type FillFunc func(Record, any) error

var fillFunc FillFunc = func(r Record, container any) error {
	dbByte, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(dbByte, container)
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// getPrintableAttrs returns a slice of keys to be printed from the Record
func getPrintableAttrs(r Record) []string {
	var attrs []string
	for key := range r {
		if _, ok := printableAttrs[key]; ok {
			attrs = append(attrs, key)
		}
	}
	sort.Strings(attrs) // Sort to keep consistent order
	return attrs
}

// Renderable is an interface implemented by types that can render themselves
// into a human-readable string format, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Filler is a generic interface for filling a struct or slice of structs.
type Filler interface {
	// Fill populates the given container with data from the implementing type.
	// The container can be a pointer to a struct (for Record),
	// or a pointer to a slice of structs (for RecordSet).
	Fill(container any) error
}

// DisplayableRecord defines a unified interface for working with structured
// documentation data produced by the pipeline. It combines both rendering and
// data population capabilities.
//
// Implementing types must support:
//
//   - Rendering themselves as human-readable output via the Renderable interface.
//   - Filling provided container structs or slices using the Filler interface.
//
// This interface is implemented by Record and RecordSet, allowing
// generic handling of different record shapes (single item or list).
type DisplayableRecord interface {
	Renderable
	Filler
}

// Record is the accumulated set of fields describing one class or member.
// It starts empty, collects comment-derived fields (one combine invocation
// per distinct storage key), collects declaration-derived fields, and is then
// passed through merge. Records are owned by one processing unit and are
// never shared mutably across concurrent units.
type Record map[string]any

// RecordSet represents a list of Record objects, typically the members of one
// class in the order they were processed.
type RecordSet []Record

// RecordUnion defines a union of supported record types for generic operations.
// It can be a single Record or a RecordSet.
type RecordUnion interface {
	Record | RecordSet
}

// Fill populates the exported fields of the given struct pointer using values
// from the Record (a map[string]any). It uses JSON marshaling and unmarshaling
// to automatically map keys to struct fields based on their `json` tags and
// perform type conversions where needed.
//
// The target container must be a non-nil pointer to a struct. Fields in the
// struct must be exported and optionally tagged with `json` to match keys in
// the Record.
//
// Returns an error if the container is not a pointer to a struct or if
// serialization fails.
func (r Record) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a struct")
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("container must point to a struct")
	}
	return fillFunc(r, container)
}

// RecordName returns the name of the record as a string.
// It looks up the "name" field in the record map.
func (r Record) RecordName() string {
	nameVal, ok := r["name"]
	if !ok {
		panic(fmt.Sprintf("record name not found in record %s", r.PrettyTable()))
	}
	return fmt.Sprintf("%v", nameVal)
}

// RecordKind returns the resolved kind of the record ("class" or a member
// kind). It looks up the KindKey field in the record map.
func (r Record) RecordKind() string {
	kindVal, ok := r[KindKey]
	if !ok {
		panic(fmt.Sprintf("record kind not found in record %s", r.PrettyTable()))
	}
	return fmt.Sprintf("%v", kindVal)
}

// SetMissingValue If the key is not present in the Record, set it to the provided value
func (r Record) SetMissingValue(key string, value any) {
	if _, exists := r[key]; !exists {
		r[key] = value
	}
}

// PrettyTable prints a single Record as a table
func (r Record) PrettyTable() string {
	headers := []string{"attr", "value"}
	var rows [][]any
	var name string
	if kind, ok := r[KindKey]; ok {
		name = fmt.Sprintf("%v", kind)
	}
	if len(r) == 0 {
		return "<>"
	}
	// Iterate over printable attributes and add them to rows
	for _, key := range getPrintableAttrs(r) {
		if val, ok := r[key]; ok && val != nil {
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}

	// Collect remaining attributes that are not in printableAttrs
	remainingAttrs := make(map[string]any)
	for key, value := range r {
		if _, ok := printableAttrs[key]; !ok {
			if key == KindKey || value == nil {
				continue
			}
			remainingAttrs[key] = value
		}
	}
	if len(remainingAttrs) > 0 {
		// Marshal remainingAttrs into compact JSON
		remainingJSON, _ := json.Marshal(remainingAttrs)
		remainingJSONStr := string(remainingJSON)
		rows = append(rows, []any{"<<remaining attrs>>", remainingJSONStr})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	if name != "" {
		return fmt.Sprintf("%s:\n%s", name, t.Render("grid"))
	}
	return fmt.Sprintf("\n%s", t.Render("grid"))
}

// PrettyJson prints the Record as JSON, optionally indented
func (r Record) PrettyJson(indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(r, "", indent[0])
	} else {
		b, err = json.Marshal(r)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

func (r Record) Empty() bool {
	return len(r) == 0
}

func (r Record) String() string {
	return r.PrettyTable()
}

// Copy returns a shallow copy of the record. Nested values are shared.
func (r Record) Copy() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Fill populates the provided container slice with data from the RecordSet.
// The container must be a non-nil pointer to a slice of structs. Each Record
// in the RecordSet is individually marshaled into an element of the slice
// using JSON serialization, and appended to the resulting slice.
//
// Parameters:
//   - container: must be a pointer to a slice of structs (e.g., *[]T or *[]*T).
//
// Returns an error if:
//   - The container is not a non-nil pointer to a slice.
//   - The slice element type is not a struct.
//   - Any Record in the RecordSet fails to unmarshal into an element.
func (rs RecordSet) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a slice")
	}

	sliceVal := val.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return fmt.Errorf("container must point to a slice")
	}

	elemType := sliceVal.Type().Elem()
	isPtrElem := elemType.Kind() == reflect.Ptr

	var targetType reflect.Type
	if isPtrElem {
		if elemType.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("slice element must be pointer to a struct")
		}
		targetType = elemType.Elem()
	} else {
		if elemType.Kind() != reflect.Struct {
			return fmt.Errorf("slice element must be a struct")
		}
		targetType = elemType
	}

	for _, record := range rs {
		// Create pointer to the target struct
		elemPtr := reflect.New(targetType)
		if err := record.Fill(elemPtr.Interface()); err != nil {
			return err
		}
		if isPtrElem {
			// Append as pointer
			sliceVal.Set(reflect.Append(sliceVal, elemPtr))
		} else {
			// Append as value
			sliceVal.Set(reflect.Append(sliceVal, elemPtr.Elem()))
		}
	}
	return nil
}

// PrettyTable prints the full RecordSet by rendering each individual Record
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[\n")
	for i, record := range rs {
		out.WriteString(record.PrettyTable())
		if i < len(rs)-1 {
			out.WriteString("\n\n") // separate entries with a blank line
		}
	}
	out.WriteString("\n]")
	return out.String()
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

// PrettyJson prints the RecordSet as JSON, optionally indented
func (rs RecordSet) PrettyJson(indent ...string) string {
	var b []byte
	var err error
	if len(indent) > 0 {
		b, err = json.MarshalIndent(rs, "", indent[0])
	} else {
		b, err = json.Marshal(rs)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

//  ######################################################
//              EXPORT
//  ######################################################

// EncodeMsgpack serializes the Record into a compact msgpack payload suitable
// for handing finished records to the page assembler.
func (r Record) EncodeMsgpack() ([]byte, error) {
	return msgpack.Marshal(map[string]any(r))
}

// DecodeRecord deserializes a msgpack payload produced by EncodeMsgpack.
func DecodeRecord(data []byte) (Record, error) {
	var m map[string]any
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return ToRecord(m), nil
}

// EncodeMsgpack serializes the RecordSet into a compact msgpack payload.
func (rs RecordSet) EncodeMsgpack() ([]byte, error) {
	plain := make([]map[string]any, len(rs))
	for i, r := range rs {
		plain[i] = r
	}
	return msgpack.Marshal(plain)
}

// DecodeRecordSet deserializes a msgpack payload produced by RecordSet.EncodeMsgpack.
func DecodeRecordSet(data []byte) (RecordSet, error) {
	var plain []map[string]any
	if err := msgpack.Unmarshal(data, &plain); err != nil {
		return nil, err
	}
	out := make(RecordSet, len(plain))
	for i, m := range plain {
		out[i] = ToRecord(m)
	}
	return out, nil
}

// ToRecord converts a plain map into a Record.
func ToRecord(m map[string]any) Record {
	converted := Record{}
	for k, v := range m {
		converted[k] = v
	}
	return converted
}
