// Package mp4meta
// Created by RTT.
// Author: teocci@yandex.com on 2021-Nov-02
package mp4meta

import (
	"fmt"
)

type ErrorKind int

const (
	// ErrParsing is a structural violation: a short typed-data head,
	// an invalid atom size, or decoding a value twice.
	ErrParsing ErrorKind = iota
	// ErrUnknownDataType is a well-known type code this package has no
	// decoder for. The offending code is kept on the error.
	ErrUnknownDataType
	// ErrUnwritableDataType is an attempt to write an unparsed value.
	ErrUnwritableDataType
	// ErrIO wraps a read, seek or write failure from the caller's
	// source or sink.
	ErrIO
	// ErrEncoding is an invalid utf-8 byte sequence or an unpaired
	// utf-16 surrogate.
	ErrEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParsing:
		return "Parsing"
	case ErrUnknownDataType:
		return "UnknownDataType"
	case ErrUnwritableDataType:
		return "UnwritableDataType"
	case ErrIO:
		return "IO"
	case ErrEncoding:
		return "Encoding"
	}
	return "Unknown"
}

type Error struct {
	Kind  ErrorKind
	Debug string
	Code  int32
	cause error
}

func (e *Error) Error() string {
	if e.Kind == ErrUnknownDataType {
		return fmt.Sprintf("mp4meta: %s: %s: %d", e.Kind, e.Debug, e.Code)
	}
	if e.cause != nil {
		return fmt.Sprintf("mp4meta: %s: %s: %v", e.Kind, e.Debug, e.cause)
	}
	return fmt.Sprintf("mp4meta: %s: %s", e.Kind, e.Debug)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func parseErr(debug string) error {
	return &Error{Kind: ErrParsing, Debug: debug}
}

func unknownTypeErr(code int32) error {
	return &Error{Kind: ErrUnknownDataType, Debug: "unknown datatype code", Code: code}
}

func unwritableErr(debug string) error {
	return &Error{Kind: ErrUnwritableDataType, Debug: debug}
}

func ioErr(debug string, cause error) error {
	return &Error{Kind: ErrIO, Debug: debug, cause: cause}
}

func encodingErr(debug string) error {
	return &Error{Kind: ErrEncoding, Debug: debug}
}
