package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002
	LexBadBytes    Code = 1003

	// Парсерные
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynExpectEOF       Code = 2002

	// Evaluation of statements into the program environment
	SemaInfo               Code = 3000
	SemaSyntax             Code = 3001
	SemaConversion         Code = 3002
	SemaExpr               Code = 3003
	SemaProgramNotFinished Code = 3004
	SemaDuplicateGroup     Code = 3005
	SemaDuplicateAlias     Code = 3006
	SemaUnknownField       Code = 3007
	SemaUnknownGroup       Code = 3008

	// Generation
	GenInfo                   Code = 4000
	GenNotConstructedProperly Code = 4001
	GenBelowOutMin            Code = 4002

	// IO / environment
	IOLoadFileError Code = 5001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode: "Unknown error",

		LexInfo:        "Lexical information",
		LexUnknownChar: "Unknown character",
		LexBadNumber:   "Bad number literal",
		LexBadBytes:    "Malformed byte sequence literal",

		SynInfo:            "Syntax information",
		SynUnexpectedToken: "Unexpected token",
		SynExpectEOF:       "Expected end of input",

		SemaInfo:               "Evaluation information",
		SemaSyntax:             "Statement not allowed here",
		SemaConversion:         "Invalid type conversion",
		SemaExpr:               "Unsupported expression",
		SemaProgramNotFinished: "Program is not finished",
		SemaDuplicateGroup:     "Duplicate group definition",
		SemaDuplicateAlias:     "Duplicate field alias",
		SemaUnknownField:       "Unknown field alias",
		SemaUnknownGroup:       "Unknown group",

		GenInfo:                   "Generation information",
		GenNotConstructedProperly: "Program environment not constructed properly",
		GenBelowOutMin:            "Output shorter than OUT_MIN",

		IOLoadFileError: "Failed to load file",

		ObsInfo:    "Observability information",
		ObsTimings: "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// HasSource reports whether diagnostics with this code point into a source file.
func (c Code) HasSource() bool {
	return c >= LexInfo && c < 5000
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
