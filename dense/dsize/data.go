// Package dsize reports how big encoded payloads are without encoding
// anything: static bit ranges derived from the schema alone, and exact
// per-value measurements. Both reuse the dfield width calculus; the formulas
// live in one place only.
package dsize

type (
	// Range is the static bit envelope of one field. Bounded turns false
	// when a pointer reaches back into its own ancestry, making the maximum
	// depend on data depth alone.
	Range struct {
		MinBits int  `json:"min_bits"`
		MaxBits int  `json:"max_bits"`
		Bounded bool `json:"bounded"`
	}
	FieldMeasure struct {
		Name string `json:"name"`
		Bits int    `json:"bits"`
	}
	Measurement struct {
		TotalBits int            `json:"total_bits"`
		PerField  []FieldMeasure `json:"per_field"`
		Symbols   map[string]int `json:"symbols"`
	}
)
