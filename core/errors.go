package core

import (
	"errors"
	"fmt"
)

// ConflictError indicates two tag descriptors claimed the same annotation
// pattern or declaration pattern at registration time. Registration conflicts
// are fatal and abort startup.
type ConflictError struct {
	Field string // "pattern" or "declaration pattern"
	Name  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tag %s '%s' is already registered", e.Field, e.Name)
}

// UnknownTagError indicates an annotation marker did not match any registered
// tag pattern. Non-fatal: the annotation is skipped and parsing continues.
type UnknownTagError struct {
	Pattern string
	Pos     Position
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag '@%s' at %s", e.Pattern, e.Pos)
}

// MalformedFragmentError indicates a parse routine could not interpret the
// text following its marker, or a combined payload failed schema validation.
// Recoverable per-annotation: the fragment is discarded, parsing continues.
type MalformedFragmentError struct {
	Pattern string
	Pos     Position
	Reason  string
}

func (e *MalformedFragmentError) Error() string {
	return fmt.Sprintf("malformed '@%s' fragment at %s: %s", e.Pattern, e.Pos, e.Reason)
}

// MergeError indicates a merge routine found inconsistent combined data, for
// example conflicting required fields. Recoverable per-record: the record is
// marked incomplete and excluded from final output.
type MergeError struct {
	Pattern string
	Kind    string
	Pos     Position
	Reason  string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("merge of '%s' failed for %s record at %s: %s", e.Pattern, e.Kind, e.Pos, e.Reason)
}

func IsConflictErr(err error) bool {
	var cErr *ConflictError
	return errors.As(err, &cErr)
}

func IsUnknownTagErr(err error) bool {
	var uErr *UnknownTagError
	return errors.As(err, &uErr)
}

func IsMalformedFragmentErr(err error) bool {
	var mErr *MalformedFragmentError
	return errors.As(err, &mErr)
}

func IsMergeErr(err error) bool {
	var mErr *MergeError
	return errors.As(err, &mErr)
}

// IgnoreUnknownTag returns nil for UnknownTagError values, passing every
// other error through unchanged.
func IgnoreUnknownTag(err error) error {
	if IsUnknownTagErr(err) {
		return nil
	}
	return err
}
