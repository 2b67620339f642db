package dbits

import (
	"math/big"
)

func NewWriter() *Writer {
	return &Writer{
		accumulator: big.NewInt(0),
		bitCount:    0,
	}
}

// mask keeps the low bitWidth bits of value. Out-of-range values are
// truncated silently; rejecting them is the validation pass's job.
func mask(value *big.Int, bitWidth int) *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bitWidth))
	limit.Sub(limit, big.NewInt(1))
	return new(big.Int).And(value, limit)
}

func (r *Writer) WriteUInt(value uint64, bitWidth int) {
	r.WriteUBigInt(new(big.Int).SetUint64(value), bitWidth)
}

func (r *Writer) WriteUBigInt(value *big.Int, bitWidth int) {
	if bitWidth <= 0 {
		return
	}
	masked := mask(value, bitWidth)
	r.accumulator.Lsh(r.accumulator, uint(bitWidth))
	r.accumulator.Or(r.accumulator, masked)
	r.bitCount += bitWidth
}

func (r *Writer) BigInt() *big.Int {
	return new(big.Int).Set(r.accumulator)
}

func (r *Writer) BitCount() int {
	return r.bitCount
}
