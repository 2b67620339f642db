// Package dalpha renders the accumulated big integer of an encode call as a
// string over an arbitrary symbol alphabet, and parses such strings back.
// An alphabet of exactly "01" produces literal bit strings through the very
// same big-integer round trip, padding included.
package dalpha

import (
	"fmt"
)

const (
	NameBase64URL = "base64url"
	NameBase45QR  = "base45qr"

	symbolsBase64URL = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	// 38 symbols of the QR alphanumeric set; the Base45 specials that clash
	// with URLs and shells (space, *, +, -, ., /, :) are left out.
	symbolsBase45QR = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ$%"
)

type (
	Alphabet struct {
		symbols []rune
		indexes map[rune]int
	}
	TooFewSymbolsError struct {
		Symbols string
	}
	DuplicateSymbolError struct {
		Symbol rune
	}
	UnknownSymbolError struct {
		Symbol   rune
		Position int
	}
)

func (r TooFewSymbolsError) Error() string {
	return fmt.Sprintf(`alphabet "%s" needs at least 2 symbols`, r.Symbols)
}

func (r DuplicateSymbolError) Error() string {
	return fmt.Sprintf(`alphabet has duplicated symbol "%c"`, r.Symbol)
}

func (r UnknownSymbolError) Error() string {
	return fmt.Sprintf(
		`symbol "%c" at position %d does not belong to the alphabet`,
		r.Symbol, r.Position,
	)
}
