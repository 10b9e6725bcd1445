package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Device errors
	ErrConsoleClosed = errors.New(f("console closed"))

	// Rom errors
	ErrRomDigits = errors.New(f("not an 8 digit binary number"))
)

// ErrRomSyntax indicates the location of a malformed Rom line.
type ErrRomSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrRomSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrRomSyntax) Unwrap() error {
	return err.Err
}
