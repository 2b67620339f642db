package dalpha

import (
	"math/big"
)

var (
	Base64URL = MustNew(symbolsBase64URL)
	Base45QR  = MustNew(symbolsBase45QR)
)

func New(symbols string) (*Alphabet, error) {
	runes := []rune(symbols)
	if len(runes) < 2 {
		return nil, TooFewSymbolsError{Symbols: symbols}
	}
	indexes := make(map[rune]int, len(runes))
	for i, symbol := range runes {
		if _, ok := indexes[symbol]; ok {
			return nil, DuplicateSymbolError{Symbol: symbol}
		}
		indexes[symbol] = i
	}
	return &Alphabet{
		symbols: runes,
		indexes: indexes,
	}, nil
}

func MustNew(symbols string) *Alphabet {
	alphabet, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return alphabet
}

// ByName looks up a built-in alphabet; any other non-empty string is treated
// as a custom symbol set. An empty name falls back to Base64URL.
func ByName(name string) (*Alphabet, error) {
	switch name {
	case "", NameBase64URL:
		return Base64URL, nil
	case NameBase45QR:
		return Base45QR, nil
	default:
		return New(name)
	}
}

func (r *Alphabet) Size() int {
	return len(r.symbols)
}

func (r *Alphabet) String() string {
	return string(r.symbols)
}

// SymbolCount is the minimum number of symbols needed to hold bitWidth bits:
// ceil(bitWidth / log2(size)), computed exactly as the smallest n with
// size^n >= 2^bitWidth.
func (r *Alphabet) SymbolCount(bitWidth int) int {
	size := big.NewInt(int64(r.Size()))
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bitWidth))
	count := 0
	power := big.NewInt(1)
	for power.Cmp(limit) < 0 {
		power.Mul(power, size)
		count++
	}
	return count
}

// BitCapacity is the number of whole bits symbolCount symbols can carry:
// floor(symbolCount * log2(size)), computed exactly as bitlen(size^n) - 1.
func (r *Alphabet) BitCapacity(symbolCount int) int {
	size := big.NewInt(int64(r.Size()))
	power := new(big.Int).Exp(size, big.NewInt(int64(symbolCount)), nil)
	return power.BitLen() - 1
}
