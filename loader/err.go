package loader

import (
	"errors"
	"strings"

	"github.com/ezrec/gtuc312/translate"
)

var f = translate.From

var (
	// Line warnings
	ErrDataFormat      = errors.New(f("invalid data format"))
	ErrDataNumber      = errors.New(f("non-integer data"))
	ErrDataDuplicate   = errors.New(f("duplicate data address"))
	ErrCodeFormat      = errors.New(f("missing ':' in instruction"))
	ErrCodeAddress     = errors.New(f("non-integer instruction address"))
	ErrCodeEmpty       = errors.New(f("empty instruction"))
	ErrCodeDuplicate   = errors.New(f("duplicate instruction address"))
	ErrOutsideSection  = errors.New(f("line outside section"))
	ErrSectionNested   = errors.New(f("section begins inside another section"))
	ErrSectionLonely   = errors.New(f("section end without begin"))
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrSyntax is a problem on one line of a program.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrParseExpression is a $(...) expression that does not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOverlap lists the addresses defined in both the data and instruction segments.
type ErrOverlap []int64

func (err ErrOverlap) Error() string {
	var addrs []string
	for _, addr := range err {
		addrs = append(addrs, formatInt(addr))
	}
	return f("overlapping data and instruction addresses: %v", strings.Join(addrs, ", "))
}
