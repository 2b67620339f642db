// Package dfield stores the dense-schema field model together with the
// bit-width calculus and the recursive encoder and decoder that walk it.
package dfield

type (
	FieldKind string

	// Field is a tagged variant dispatched on Kind. Only the parameters of
	// the tagged kind are meaningful; the rest stay at their zero values.
	// Fields are immutable once constructed and safe to share across calls.
	Field struct {
		Name string    `json:"name"`
		Kind FieldKind `json:"kind"`

		// int
		Min int `json:"min,omitempty"`
		Max int `json:"max,omitempty"`

		// fixed
		FixedMin  float64 `json:"fixed_min,omitempty"`
		FixedMax  float64 `json:"fixed_max,omitempty"`
		Precision float64 `json:"precision,omitempty"`

		// enum, and the discriminator options mirrored onto union
		Options []string `json:"options,omitempty"`

		// array and enum_array; Item is the enum field for enum_array
		MinLength int    `json:"min_length,omitempty"`
		MaxLength int    `json:"max_length,omitempty"`
		Item      *Field `json:"item,omitempty"`

		// union
		Discriminator *Field             `json:"discriminator,omitempty"`
		Variants      map[string][]Field `json:"variants,omitempty"`

		// optional
		Inner   *Field `json:"inner,omitempty"`
		Default any    `json:"default,omitempty"`

		// object
		Fields []Field `json:"fields,omitempty"`

		// pointer
		Target string `json:"target,omitempty"`
	}

	// Schema is the ordered list of named top-level fields. Encode and decode
	// walk it front to back; the order is part of the wire contract.
	Schema []Field
)

const (
	FieldKindUnknown   = FieldKind("unknown")
	FieldKindBool      = FieldKind("bool")
	FieldKindInt       = FieldKind("int")
	FieldKindEnum      = FieldKind("enum")
	FieldKindFixed     = FieldKind("fixed")
	FieldKindArray     = FieldKind("array")
	FieldKindEnumArray = FieldKind("enum_array")
	FieldKindUnion     = FieldKind("union")
	FieldKindOptional  = FieldKind("optional")
	FieldKindObject    = FieldKind("object")
	FieldKindPointer   = FieldKind("pointer")
)
