// Package dbits holds the bit-level buffer that every encode and decode call
// funnels through. The writer accumulates fields into one growing big integer;
// the reader consumes a fixed big integer most-significant-bits-first.
package dbits

import (
	"fmt"
	"math/big"
)

const (
	// MaxUIntWidth is the widest read that ReadUInt serves. Wider fields
	// (enum array content, for example) must go through ReadUBigInt.
	MaxUIntWidth = 32
)

type (
	Writer struct {
		accumulator *big.Int
		bitCount    int
	}
	Reader struct {
		data      *big.Int
		remaining int
	}
	InsufficientBitsError struct {
		Requested int
		Remaining int
	}
	WidthTooLargeError struct {
		Requested int
		Limit     int
	}
)

func (r InsufficientBitsError) Error() string {
	return fmt.Sprintf(
		"insufficient bits: requested %d while %d remain",
		r.Requested, r.Remaining,
	)
}

func (r WidthTooLargeError) Error() string {
	return fmt.Sprintf(
		"read width %d exceeds the %d-bit limit; use ReadUBigInt instead",
		r.Requested, r.Limit,
	)
}
