package dsize

import (
	"densebit/dense/dalpha"
	"densebit/dense/dfield"
	"github.com/pkg/errors"
)

// StaticRange computes the smallest and largest payload a field can produce
// from the schema alone. Revisited pointer targets mark the range unbounded
// instead of recursing forever.
func StaticRange(field dfield.Field, schema dfield.Schema) (Range, error) {
	return staticRange(field, schema, map[string]struct{}{})
}

// SchemaRange sums the static ranges of every top-level field.
func SchemaRange(schema dfield.Schema) (Range, error) {
	total := Range{Bounded: true}
	for _, field := range schema {
		fieldRange, err := StaticRange(field, schema)
		if err != nil {
			return Range{}, errors.Wrapf(err, `SchemaRange error: field "%s"`, field.Name)
		}
		total = total.add(fieldRange)
	}
	return total, nil
}

func (r Range) add(other Range) Range {
	return Range{
		MinBits: r.MinBits + other.MinBits,
		MaxBits: r.MaxBits + other.MaxBits,
		Bounded: r.Bounded && other.Bounded,
	}
}

func (r Range) scale(minFactor int, maxFactor int) Range {
	return Range{
		MinBits: r.MinBits * minFactor,
		MaxBits: r.MaxBits * maxFactor,
		Bounded: r.Bounded,
	}
}

func constant(bits int) Range {
	return Range{
		MinBits: bits,
		MaxBits: bits,
		Bounded: true,
	}
}

func staticRange(field dfield.Field, schema dfield.Schema, visiting map[string]struct{}) (Range, error) {
	switch field.Kind {
	case dfield.FieldKindBool, dfield.FieldKindInt,
		dfield.FieldKindEnum, dfield.FieldKindFixed:
		bits, err := dfield.ConstantWidth(field)
		if err != nil {
			return Range{}, err
		}
		return constant(bits), nil
	case dfield.FieldKindArray:
		itemRange, err := staticRange(*field.Item, schema, visiting)
		if err != nil {
			return Range{}, err
		}
		lengthRange := constant(field.LengthWidth())
		return lengthRange.add(itemRange.scale(field.MinLength, field.MaxLength)), nil
	case dfield.FieldKindEnumArray:
		return constant(field.LengthWidth()).add(Range{
			MinBits: dfield.ContentWidth(len(field.Item.Options), field.MinLength),
			MaxBits: dfield.ContentWidth(len(field.Item.Options), field.MaxLength),
			Bounded: true,
		}), nil
	case dfield.FieldKindOptional:
		innerRange, err := staticRange(*field.Inner, schema, visiting)
		if err != nil {
			return Range{}, err
		}
		return Range{
			MinBits: 1,
			MaxBits: 1 + innerRange.MaxBits,
			Bounded: innerRange.Bounded,
		}, nil
	case dfield.FieldKindUnion:
		return staticUnionRange(field, schema, visiting)
	case dfield.FieldKindObject:
		return staticMembersRange(field.Fields, schema, visiting)
	case dfield.FieldKindPointer:
		if _, ok := visiting[field.Target]; ok {
			return Range{Bounded: false}, nil
		}
		target, err := dfield.ResolvePointer(field.Target, schema)
		if err != nil {
			return Range{}, err
		}
		visiting[field.Target] = struct{}{}
		targetRange, err := staticRange(target, schema, visiting)
		delete(visiting, field.Target)
		return targetRange, err
	}
	return Range{}, dfield.NoCodecFuncError{
		FieldName: field.Name,
		Kind:      field.Kind,
	}
}

func staticMembersRange(fields []dfield.Field, schema dfield.Schema, visiting map[string]struct{}) (Range, error) {
	total := Range{Bounded: true}
	for _, field := range fields {
		fieldRange, err := staticRange(field, schema, visiting)
		if err != nil {
			return Range{}, err
		}
		total = total.add(fieldRange)
	}
	return total, nil
}

func staticUnionRange(field dfield.Field, schema dfield.Schema, visiting map[string]struct{}) (Range, error) {
	discriminatorBits, err := dfield.ConstantWidth(*field.Discriminator)
	if err != nil {
		return Range{}, err
	}
	result := Range{Bounded: true}
	first := true
	for _, option := range field.Options {
		variantRange, err := staticMembersRange(field.Variants[option], schema, visiting)
		if err != nil {
			return Range{}, errors.Wrapf(err, `staticUnionRange error: variant "%s"`, option)
		}
		if first {
			result = variantRange
			first = false
			continue
		}
		if variantRange.MinBits < result.MinBits {
			result.MinBits = variantRange.MinBits
		}
		if variantRange.MaxBits > result.MaxBits {
			result.MaxBits = variantRange.MaxBits
		}
		result.Bounded = result.Bounded && variantRange.Bounded
	}
	return constant(discriminatorBits).add(result), nil
}

// Measure reports the exact bit cost of encoding record, per top-level field
// and in total, plus the rendered length in each built-in alphabet.
func Measure(schema dfield.Schema, record any) (Measurement, error) {
	recordView, ok := dfield.AsRecord(record)
	if !ok {
		return Measurement{}, dfield.NotARecordError{
			FieldName: "(schema root)",
			Value:     record,
		}
	}
	measurement := Measurement{
		PerField: make([]FieldMeasure, 0, len(schema)),
	}
	for _, field := range schema {
		value, _ := recordView.Get(field.Name)
		bits, err := dfield.CalculateWidth(field, value, schema)
		if err != nil {
			return Measurement{}, errors.Wrapf(err, `Measure error: field "%s"`, field.Name)
		}
		measurement.PerField = append(measurement.PerField, FieldMeasure{
			Name: field.Name,
			Bits: bits,
		})
		measurement.TotalBits += bits
	}
	measurement.Symbols = map[string]int{
		dalpha.NameBase64URL: dalpha.Base64URL.SymbolCount(measurement.TotalBits),
		dalpha.NameBase45QR:  dalpha.Base45QR.SymbolCount(measurement.TotalBits),
	}
	return measurement, nil
}
