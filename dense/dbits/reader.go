package dbits

import (
	"math/big"
)

func NewReader(data *big.Int, capacityBits int) *Reader {
	return &Reader{
		data:      new(big.Int).Set(data),
		remaining: capacityBits,
	}
}

func (r *Reader) Remaining() int {
	return r.remaining
}

// ReadUBigInt consumes bitWidth bits from the earliest-written position still
// left in the buffer. The stream carries no framing of its own, so the caller
// must request widths in the exact order the writer emitted them.
func (r *Reader) ReadUBigInt(bitWidth int) (*big.Int, error) {
	if bitWidth <= 0 {
		return big.NewInt(0), nil
	}
	if bitWidth > r.remaining {
		return nil, InsufficientBitsError{
			Requested: bitWidth,
			Remaining: r.remaining,
		}
	}
	result := new(big.Int).Rsh(r.data, uint(r.remaining-bitWidth))
	result = mask(result, bitWidth)
	r.remaining -= bitWidth
	return result, nil
}

func (r *Reader) ReadUInt(bitWidth int) (uint64, error) {
	if bitWidth > MaxUIntWidth {
		return 0, WidthTooLargeError{
			Requested: bitWidth,
			Limit:     MaxUIntWidth,
		}
	}
	result, err := r.ReadUBigInt(bitWidth)
	if err != nil {
		return 0, err
	}
	return result.Uint64(), nil
}
