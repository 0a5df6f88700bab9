package eval

import (
	"fmt"

	"bajzel/internal/diag"
	"bajzel/internal/source"
)

type ErrorKind uint8

const (
	KindConversion ErrorKind = iota + 1
	KindProgramNotFinished
	KindSyntax
	KindExpr
	KindNotConstructedProperly
)

func (k ErrorKind) String() string {
	switch k {
	case KindConversion:
		return "conversion error"
	case KindProgramNotFinished:
		return "program not finished"
	case KindSyntax:
		return "syntax error"
	case KindExpr:
		return "expression error"
	case KindNotConstructedProperly:
		return "not constructed properly"
	}
	return "error"
}

// Error is every failure the evaluator and its accessors return.
type Error struct {
	Kind ErrorKind
	Msg  string
	Span source.Span
	Err  error // underlying cause, if any

	code diag.Code
}

var (
	// ErrProgramNotFinished matches any error of KindProgramNotFinished via errors.Is.
	ErrProgramNotFinished = &Error{Kind: KindProgramNotFinished, Msg: "statement stream ended before GENERATE section was complete"}
	// ErrNotConstructedProperly matches any error of KindNotConstructedProperly via errors.Is.
	ErrNotConstructedProperly = &Error{Kind: KindNotConstructedProperly, Msg: "environment is missing a required definition"}
)

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is compares kinds only, so sentinels match errors with any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Code is the diagnostic code the driver reports this error under.
func (e *Error) Code() diag.Code {
	if e.code != diag.UnknownCode {
		return e.code
	}
	switch e.Kind {
	case KindConversion:
		return diag.SemaConversion
	case KindProgramNotFinished:
		return diag.SemaProgramNotFinished
	case KindExpr:
		return diag.SemaExpr
	case KindNotConstructedProperly:
		return diag.GenNotConstructedProperly
	default:
		return diag.SemaSyntax
	}
}

func syntaxErr(format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Msg: fmt.Sprintf(format, args...)}
}

func exprErr(format string, args ...any) *Error {
	return &Error{Kind: KindExpr, Msg: fmt.Sprintf(format, args...)}
}

func conversionErr(value string) *Error {
	return &Error{Kind: KindConversion, Msg: fmt.Sprintf("cannot convert %q", value)}
}

func notConstructed(format string, args ...any) *Error {
	return &Error{Kind: KindNotConstructedProperly, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) withCode(c diag.Code) *Error {
	e.code = c
	return e
}

// at attaches sp unless the error already carries a span.
func at(err error, sp source.Span) error {
	if e, ok := err.(*Error); ok && e.Span == (source.Span{}) {
		e.Span = sp
	}
	return err
}
