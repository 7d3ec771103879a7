package kv

import (
	"errors"
	"fmt"
)

var (
	ErrUnbalanced          = errors.New("unbalanced braces")
	ErrUnterminatedString  = errors.New("unterminated quoted string")
	ErrMissingValue        = errors.New("key without value")
	ErrMissingRootKey      = errors.New("no top-level object")
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrUnknownType         = errors.New("unknown type tag")
	ErrTruncated           = errors.New("unexpected end of data")
	ErrUnsupportedEncoding = errors.New("value cannot be encoded")
)

// SyntaxError reports where text decoding stopped.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("kv: line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// BinaryError reports the byte offset at which binary decoding failed.
type BinaryError struct {
	Offset int
	Err    error
}

func (e *BinaryError) Error() string {
	return fmt.Sprintf("kv: offset %d: %v", e.Offset, e.Err)
}

func (e *BinaryError) Unwrap() error { return e.Err }
