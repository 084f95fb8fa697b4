package mos

import (
	"errors"

	"github.com/ezrec/apmos/translate"
)

var f = translate.From

var (
	// Candidate selection errors
	ErrNoCandidate = errors.New(f("no admissible candidate form"))
)

type ErrTierUnknown string

func (err ErrTierUnknown) Error() string {
	return f("tier '%v' unknown", string(err))
}

type ErrOpUnknown Op

func (err ErrOpUnknown) Error() string {
	return f("opcode %v unknown", int(err))
}

type ErrPredicate struct {
	Pred string
	Err  error
}

func (err ErrPredicate) Error() string {
	return f("predicate '%v' %v", err.Pred, err.Err)
}

func (err ErrPredicate) Unwrap() error {
	return err.Err
}
