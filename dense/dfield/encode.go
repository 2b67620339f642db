package dfield

import (
	"fmt"
	"math"
	"math/big"

	"densebit/dense/dbits"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	NoCodecFuncError struct {
		FieldName string
		Kind      FieldKind
	}
	NotAnArrayError struct {
		FieldName string
		Value     any
	}
	NotARecordError struct {
		FieldName string
		Value     any
	}
	WrongValueTypeError struct {
		FieldName string
		Expected  string
		Value     any
	}
	UnknownOptionError struct {
		FieldName string
		Option    string
	}
	MissingDiscriminatorError struct {
		FieldName         string
		DiscriminatorName string
	}
)

func (r NoCodecFuncError) Error() string {
	return fmt.Sprintf(
		`no codec function for field "%s" of kind "%s"`,
		r.FieldName, r.Kind,
	)
}

func (r NotAnArrayError) Error() string {
	return fmt.Sprintf(
		`field "%s" expects an ordered sequence; got "%v"`,
		r.FieldName, r.Value,
	)
}

func (r NotARecordError) Error() string {
	return fmt.Sprintf(
		`field "%s" expects a keyed record; got "%v"`,
		r.FieldName, r.Value,
	)
}

func (r WrongValueTypeError) Error() string {
	return fmt.Sprintf(
		`field "%s" expects %s; got "%v"`,
		r.FieldName, r.Expected, r.Value,
	)
}

func (r UnknownOptionError) Error() string {
	return fmt.Sprintf(
		`option "%s" does not belong to field "%s"`,
		r.Option, r.FieldName,
	)
}

func (r MissingDiscriminatorError) Error() string {
	return fmt.Sprintf(
		`union "%s" received a record without its discriminator "%s"`,
		r.FieldName, r.DiscriminatorName,
	)
}

type encodeFunc func(writer *dbits.Writer, field Field, value any, schema Schema) error

var encodeFuncs map[FieldKind]encodeFunc

func init() {
	encodeFuncs = map[FieldKind]encodeFunc{
		FieldKindBool:      EncodeBool,
		FieldKindInt:       EncodeInt,
		FieldKindEnum:      EncodeEnum,
		FieldKindFixed:     EncodeFixed,
		FieldKindArray:     EncodeArray,
		FieldKindEnumArray: EncodeEnumArray,
		FieldKindUnion:     EncodeUnion,
		FieldKindOptional:  EncodeOptional,
		FieldKindObject:    EncodeObject,
		FieldKindPointer:   EncodePointer,
	}
}

// EncodeField writes value into the bit buffer against field. Out-of-range
// scalars are masked, not rejected; only shape mismatches abort. The widths
// written here must agree with CalculateWidth bit for bit.
func EncodeField(writer *dbits.Writer, field Field, value any, schema Schema) error {
	encode, ok := encodeFuncs[field.Kind]
	if !ok {
		return NoCodecFuncError{
			FieldName: field.Name,
			Kind:      field.Kind,
		}
	}
	return encode(writer, field, value, schema)
}

func EncodeBool(writer *dbits.Writer, field Field, value any, _ Schema) error {
	valueBool, ok := value.(bool)
	if !ok {
		return WrongValueTypeError{
			FieldName: field.Name,
			Expected:  "a boolean",
			Value:     value,
		}
	}
	if valueBool {
		writer.WriteUInt(1, 1)
	} else {
		writer.WriteUInt(0, 1)
	}
	return nil
}

func EncodeInt(writer *dbits.Writer, field Field, value any, _ Schema) error {
	valueInt, ok := AsInt(value)
	if !ok {
		return WrongValueTypeError{
			FieldName: field.Name,
			Expected:  "an integer",
			Value:     value,
		}
	}
	// two's-complement conversion plus the writer's mask turn out-of-range
	// values into truncation instead of an error
	writer.WriteUInt(uint64(valueInt-field.Min), field.intWidth())
	return nil
}

func EncodeEnum(writer *dbits.Writer, field Field, value any, _ Schema) error {
	option, ok := value.(string)
	if !ok {
		return WrongValueTypeError{
			FieldName: field.Name,
			Expected:  "an option string",
			Value:     value,
		}
	}
	index := lo.IndexOf(field.Options, option)
	if index == -1 {
		return UnknownOptionError{
			FieldName: field.Name,
			Option:    option,
		}
	}
	writer.WriteUInt(uint64(index), field.enumWidth())
	return nil
}

func EncodeFixed(writer *dbits.Writer, field Field, value any, _ Schema) error {
	valueFloat, ok := AsFloat(value)
	if !ok {
		return WrongValueTypeError{
			FieldName: field.Name,
			Expected:  "a number",
			Value:     value,
		}
	}
	level := int64(math.Round((valueFloat - field.FixedMin) * field.fixedScale()))
	writer.WriteUInt(uint64(level), field.fixedWidth())
	return nil
}

func EncodeArray(writer *dbits.Writer, field Field, value any, schema Schema) error {
	items, ok := AsSlice(value)
	if !ok {
		return NotAnArrayError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	writer.WriteUInt(uint64(len(items)-field.MinLength), field.LengthWidth())
	for i, item := range items {
		if err := EncodeField(writer, *field.Item, item, schema); err != nil {
			return errors.Wrapf(err, `EncodeArray error: item %d of "%s"`, i, field.Name)
		}
	}
	return nil
}

// EncodeEnumArray packs the whole element sequence as one mixed-radix big
// integer, most-significant element first, in ceil(length*log2(optionCount))
// bits. Strictly tighter than per-element slots whenever the option count is
// not a power of two.
func EncodeEnumArray(writer *dbits.Writer, field Field, value any, _ Schema) error {
	items, ok := AsSlice(value)
	if !ok {
		return NotAnArrayError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	writer.WriteUInt(uint64(len(items)-field.MinLength), field.LengthWidth())
	options := field.Item.Options
	optionCount := big.NewInt(int64(len(options)))
	content := big.NewInt(0)
	for _, item := range items {
		option, ok := item.(string)
		if !ok {
			return WrongValueTypeError{
				FieldName: field.Name,
				Expected:  "option strings",
				Value:     item,
			}
		}
		index := lo.IndexOf(options, option)
		if index == -1 {
			return UnknownOptionError{
				FieldName: field.Name,
				Option:    option,
			}
		}
		content.Mul(content, optionCount)
		content.Add(content, big.NewInt(int64(index)))
	}
	writer.WriteUBigInt(content, ContentWidth(len(options), len(items)))
	return nil
}

func selectVariant(field Field, record Record) (string, []Field, error) {
	discriminatorName := field.Discriminator.Name
	value, ok := record.Get(discriminatorName)
	if !ok {
		return "", nil, MissingDiscriminatorError{
			FieldName:         field.Name,
			DiscriminatorName: discriminatorName,
		}
	}
	option, ok := value.(string)
	if !ok || lo.IndexOf(field.Options, option) == -1 {
		return "", nil, UnknownOptionError{
			FieldName: field.Name,
			Option:    fmt.Sprintf("%v", value),
		}
	}
	return option, field.Variants[option], nil
}

func EncodeUnion(writer *dbits.Writer, field Field, value any, schema Schema) error {
	record, ok := AsRecord(value)
	if !ok {
		return NotARecordError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	option, variant, err := selectVariant(field, record)
	if err != nil {
		return err
	}
	writer.WriteUInt(
		uint64(lo.IndexOf(field.Options, option)),
		field.Discriminator.enumWidth(),
	)
	for _, variantField := range variant {
		subValue, _ := record.Get(variantField.Name)
		if err := EncodeField(writer, variantField, subValue, schema); err != nil {
			return errors.Wrapf(err, `EncodeUnion error: variant "%s" of "%s"`, option, field.Name)
		}
	}
	return nil
}

func EncodeOptional(writer *dbits.Writer, field Field, value any, schema Schema) error {
	if value == nil {
		writer.WriteUInt(0, 1)
		return nil
	}
	writer.WriteUInt(1, 1)
	if err := EncodeField(writer, *field.Inner, value, schema); err != nil {
		return errors.Wrapf(err, `EncodeOptional error: inner of "%s"`, field.Name)
	}
	return nil
}

func EncodeObject(writer *dbits.Writer, field Field, value any, schema Schema) error {
	record, ok := AsRecord(value)
	if !ok {
		return NotARecordError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	for _, subField := range field.Fields {
		subValue, _ := record.Get(subField.Name)
		if err := EncodeField(writer, subField, subValue, schema); err != nil {
			return errors.Wrapf(err, `EncodeObject error: member of "%s"`, field.Name)
		}
	}
	return nil
}

// EncodePointer re-enters EncodeField with the resolved target, so recursive
// structures cost one stack frame per level of actual data depth.
func EncodePointer(writer *dbits.Writer, field Field, value any, schema Schema) error {
	target, err := ResolvePointer(field.Target, schema)
	if err != nil {
		return err
	}
	return EncodeField(writer, target, value, schema)
}
