package dfield

import (
	"fmt"
	"math"

	"densebit/ds"
)

type (
	InvalidRangeError struct {
		FieldName string
		Min       float64
		Max       float64
	}
	RangeTooWideError struct {
		FieldName string
		Bits      int
	}
	InvalidPrecisionError struct {
		FieldName string
		Precision float64
	}
	TooFewOptionsError struct {
		FieldName string
		Count     int
	}
	DuplicatedOptionError struct {
		FieldName string
		Option    string
	}
	InvalidLengthBoundsError struct {
		FieldName string
		MinLength int
		MaxLength int
	}
	NotAnEnumError struct {
		FieldName string
		Kind      FieldKind
	}
	MissingVariantError struct {
		FieldName string
		Option    string
	}
)

func (r InvalidRangeError) Error() string {
	return fmt.Sprintf(
		`field "%s" has invalid range [%v, %v]`,
		r.FieldName, r.Min, r.Max,
	)
}

func (r RangeTooWideError) Error() string {
	return fmt.Sprintf(
		`field "%s" needs %d bits per value, more than the supported 63`,
		r.FieldName, r.Bits,
	)
}

func (r InvalidPrecisionError) Error() string {
	return fmt.Sprintf(
		`field "%s" has precision %v whose reciprocal is not an integer`,
		r.FieldName, r.Precision,
	)
}

func (r TooFewOptionsError) Error() string {
	return fmt.Sprintf(
		`field "%s" has %d option(s); at least 2 are needed`,
		r.FieldName, r.Count,
	)
}

func (r DuplicatedOptionError) Error() string {
	return fmt.Sprintf(
		`field "%s" has duplicated option "%s"`,
		r.FieldName, r.Option,
	)
}

func (r InvalidLengthBoundsError) Error() string {
	return fmt.Sprintf(
		`field "%s" has invalid length bounds [%d, %d]`,
		r.FieldName, r.MinLength, r.MaxLength,
	)
}

func (r NotAnEnumError) Error() string {
	return fmt.Sprintf(
		`field "%s" expects an enum but received kind "%s"`,
		r.FieldName, r.Kind,
	)
}

func (r MissingVariantError) Error() string {
	return fmt.Sprintf(
		`union "%s" declares option "%s" without a variant field list`,
		r.FieldName, r.Option,
	)
}

func NewBoolField(name string) Field {
	return Field{
		Name: name,
		Kind: FieldKindBool,
	}
}

func NewIntField(name string, min int, max int) (Field, error) {
	if max < min {
		return Field{}, InvalidRangeError{
			FieldName: name,
			Min:       float64(min),
			Max:       float64(max),
		}
	}
	if bits := countWidth(uint64(max-min) + 1); bits > 63 {
		return Field{}, RangeTooWideError{FieldName: name, Bits: bits}
	}
	return Field{
		Name: name,
		Kind: FieldKindInt,
		Min:  min,
		Max:  max,
	}, nil
}

func checkOptions(name string, options []string) error {
	if len(options) < 2 {
		return TooFewOptionsError{
			FieldName: name,
			Count:     len(options),
		}
	}
	seen := map[string]struct{}{}
	for _, option := range options {
		if _, ok := seen[option]; ok {
			return DuplicatedOptionError{
				FieldName: name,
				Option:    option,
			}
		}
		seen[option] = struct{}{}
	}
	return nil
}

func NewEnumField(name string, options []string) (Field, error) {
	if err := checkOptions(name, options); err != nil {
		return Field{}, err
	}
	return Field{
		Name:    name,
		Kind:    FieldKindEnum,
		Options: options,
	}, nil
}

func NewFixedField(name string, min float64, max float64, precision float64) (Field, error) {
	if max < min {
		return Field{}, InvalidRangeError{
			FieldName: name,
			Min:       min,
			Max:       max,
		}
	}
	scale := 1 / precision
	if precision <= 0 || math.Round(scale) != scale {
		return Field{}, InvalidPrecisionError{
			FieldName: name,
			Precision: precision,
		}
	}
	return Field{
		Name:      name,
		Kind:      FieldKindFixed,
		FixedMin:  min,
		FixedMax:  max,
		Precision: precision,
	}, nil
}

func checkLengthBounds(name string, minLength int, maxLength int) error {
	if minLength < 0 || maxLength < minLength {
		return InvalidLengthBoundsError{
			FieldName: name,
			MinLength: minLength,
			MaxLength: maxLength,
		}
	}
	return nil
}

func NewArrayField(name string, minLength int, maxLength int, item Field) (Field, error) {
	if err := checkLengthBounds(name, minLength, maxLength); err != nil {
		return Field{}, err
	}
	return Field{
		Name:      name,
		Kind:      FieldKindArray,
		MinLength: minLength,
		MaxLength: maxLength,
		Item:      &item,
	}, nil
}

func NewEnumArrayField(name string, minLength int, maxLength int, item Field) (Field, error) {
	if err := checkLengthBounds(name, minLength, maxLength); err != nil {
		return Field{}, err
	}
	if item.Kind != FieldKindEnum {
		return Field{}, NotAnEnumError{
			FieldName: name,
			Kind:      item.Kind,
		}
	}
	return Field{
		Name:      name,
		Kind:      FieldKindEnumArray,
		MinLength: minLength,
		MaxLength: maxLength,
		Item:      &item,
	}, nil
}

func NewUnionField(name string, discriminator Field, variants map[string][]Field) (Field, error) {
	if discriminator.Kind != FieldKindEnum {
		return Field{}, NotAnEnumError{
			FieldName: name,
			Kind:      discriminator.Kind,
		}
	}
	for _, option := range discriminator.Options {
		if _, ok := variants[option]; !ok {
			return Field{}, MissingVariantError{
				FieldName: name,
				Option:    option,
			}
		}
	}
	return Field{
		Name:          name,
		Kind:          FieldKindUnion,
		Options:       ds.ShallowCopy(discriminator.Options),
		Discriminator: &discriminator,
		Variants:      variants,
	}, nil
}

func NewOptionalField(name string, inner Field) Field {
	return Field{
		Name:  name,
		Kind:  FieldKindOptional,
		Inner: &inner,
	}
}

// NewOptionalFieldWithDefault configures the value a decoder surfaces when
// the presence bit is off; absent stays nil without it.
func NewOptionalFieldWithDefault(name string, inner Field, defaultValue any) Field {
	field := NewOptionalField(name, inner)
	field.Default = defaultValue
	return field
}

func NewObjectField(name string, fields []Field) Field {
	return Field{
		Name:   name,
		Kind:   FieldKindObject,
		Fields: fields,
	}
}

func NewPointerField(name string, target string) Field {
	return Field{
		Name:   name,
		Kind:   FieldKindPointer,
		Target: target,
	}
}
