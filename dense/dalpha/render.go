package dalpha

import (
	"math/big"

	"densebit/ds"
	"github.com/samber/lo"
)

// Render writes value in the alphabet's base, left-padded with the zero
// symbol up to SymbolCount(bitWidth) so the output length depends only on the
// bit width, never on leading zero bits of the value.
func (r *Alphabet) Render(value *big.Int, bitWidth int) string {
	size := big.NewInt(int64(r.Size()))
	quotient := new(big.Int).Set(value)
	remainder := new(big.Int)
	digits := make([]rune, 0)
	for quotient.Sign() > 0 {
		quotient.DivMod(quotient, size, remainder)
		digits = append(digits, r.symbols[remainder.Int64()])
	}
	digits = lo.Reverse(digits)

	minLength := r.SymbolCount(bitWidth)
	if padding := minLength - len(digits); padding > 0 {
		digits = append(ds.Repeat(padding, r.symbols[0]), digits...)
	}
	return string(digits)
}

// Parse folds the string back into a big integer and reports the maximum
// number of bits the string could have carried, which is what the bit reader
// uses as its capacity.
func (r *Alphabet) Parse(encoded string) (*big.Int, int, error) {
	size := big.NewInt(int64(r.Size()))
	value := big.NewInt(0)
	symbolCount := 0
	for position, symbol := range []rune(encoded) {
		index, ok := r.indexes[symbol]
		if !ok {
			return nil, 0, UnknownSymbolError{
				Symbol:   symbol,
				Position: position,
			}
		}
		value.Mul(value, size)
		value.Add(value, big.NewInt(int64(index)))
		symbolCount++
	}
	return value, r.BitCapacity(symbolCount), nil
}
