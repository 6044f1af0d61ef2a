// Package wavefront parses the subset of the Wavefront OBJ and MTL text
// formats the viewer needs: positions, normals, texture coordinates,
// triangle and quad faces, and the basic shading attributes of materials.
//
// Malformed records never abort a parse. They are skipped, logged and
// collected as Diagnostics on the result.
package wavefront

import (
	"fmt"

	"github.com/spaghettifunk/objview/engine/core"
)

const (
	objType = "obj"
	mtlType = "mtl"
)

// DiagnosticKind classifies a non-fatal anomaly found while parsing.
type DiagnosticKind int

const (
	// A face with a vertex count other than 3 or 4.
	DiagnosticUnsupportedFace DiagnosticKind = iota
	// A token that should be numeric but is not.
	DiagnosticInvalidNumber
	// An MTL keyword the parser does not handle.
	DiagnosticUnknownKeyword
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticUnsupportedFace:
		return "unsupported face"
	case DiagnosticInvalidNumber:
		return "invalid number"
	case DiagnosticUnknownKeyword:
		return "unknown keyword"
	default:
		return "unknown"
	}
}

// Diagnostic describes a record that was skipped or only partially applied.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Keyword string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}

// ParseError is returned for anomalies that stop a parse.
type ParseError struct {
	Format  string
	Line    int
	Keyword string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s(%d): '%s': %v", e.Format, e.Line, e.Keyword, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type options struct {
	strictNumbers bool
	source        string
}

// Option tunes a parse call.
type Option func(*options)

// WithStrictNumbers makes records holding non-numeric tokens get rejected as
// a whole. By default the bad token is stored as NaN and the record is kept.
func WithStrictNumbers(strict bool) Option {
	return func(o *options) {
		o.strictNumbers = strict
	}
}

// WithSource names the parsed text in log messages.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

func newOptions(opts []Option) options {
	o := options{source: "<memory>"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// diagnostics collects anomalies for one parse call and mirrors them to the log.
type diagnostics struct {
	format string
	source string
	list   []Diagnostic
}

func (d *diagnostics) add(kind DiagnosticKind, line int, keyword, format string, args ...interface{}) {
	diag := Diagnostic{
		Kind:    kind,
		Line:    line,
		Keyword: keyword,
		Message: fmt.Sprintf(format, args...),
	}
	d.list = append(d.list, diag)
	core.LogWarn("%s %s(%d): %s", d.source, d.format, line, diag.Message)
}
