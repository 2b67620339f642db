package dfield

import (
	"fmt"
	"math/big"

	"densebit/dense/dbits"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	OptionIndexOutOfRangeError struct {
		FieldName string
		Index     uint64
		Count     int
	}
)

func (r OptionIndexOutOfRangeError) Error() string {
	return fmt.Sprintf(
		`field "%s" read option index %d outside its %d options`,
		r.FieldName, r.Index, r.Count,
	)
}

type decodeFunc func(reader *dbits.Reader, field Field, schema Schema) (any, error)

var decodeFuncs map[FieldKind]decodeFunc

func init() {
	decodeFuncs = map[FieldKind]decodeFunc{
		FieldKindBool:      DecodeBool,
		FieldKindInt:       DecodeInt,
		FieldKindEnum:      DecodeEnum,
		FieldKindFixed:     DecodeFixed,
		FieldKindArray:     DecodeArray,
		FieldKindEnumArray: DecodeEnumArray,
		FieldKindUnion:     DecodeUnion,
		FieldKindOptional:  DecodeOptional,
		FieldKindObject:    DecodeObject,
		FieldKindPointer:   DecodePointer,
	}
}

// DecodeField mirrors EncodeField: it must consume exactly the bits the
// encoder emitted, in the same order, or every later field in the stream
// shifts. The schema shape is the only framing there is.
func DecodeField(reader *dbits.Reader, field Field, schema Schema) (any, error) {
	decode, ok := decodeFuncs[field.Kind]
	if !ok {
		return nil, NoCodecFuncError{
			FieldName: field.Name,
			Kind:      field.Kind,
		}
	}
	return decode(reader, field, schema)
}

func DecodeBool(reader *dbits.Reader, field Field, _ Schema) (any, error) {
	value, err := reader.ReadUInt(1)
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeBool error: field "%s"`, field.Name)
	}
	return value == 1, nil
}

func DecodeInt(reader *dbits.Reader, field Field, _ Schema) (any, error) {
	delta, err := reader.ReadUBigInt(field.intWidth())
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeInt error: field "%s"`, field.Name)
	}
	return field.Min + int(delta.Uint64()), nil
}

func DecodeEnum(reader *dbits.Reader, field Field, _ Schema) (any, error) {
	index, err := reader.ReadUInt(field.enumWidth())
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeEnum error: field "%s"`, field.Name)
	}
	if index >= uint64(len(field.Options)) {
		return nil, OptionIndexOutOfRangeError{
			FieldName: field.Name,
			Index:     index,
			Count:     len(field.Options),
		}
	}
	return field.Options[index], nil
}

func DecodeFixed(reader *dbits.Reader, field Field, _ Schema) (any, error) {
	level, err := reader.ReadUBigInt(field.fixedWidth())
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeFixed error: field "%s"`, field.Name)
	}
	return field.FixedMin + float64(level.Uint64())/field.fixedScale(), nil
}

func (r Field) readLength(reader *dbits.Reader) (int, error) {
	delta, err := reader.ReadUInt(r.LengthWidth())
	if err != nil {
		return 0, err
	}
	return r.MinLength + int(delta), nil
}

func DecodeArray(reader *dbits.Reader, field Field, schema Schema) (any, error) {
	length, err := field.readLength(reader)
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeArray error: length of "%s"`, field.Name)
	}
	items := make([]any, 0, length)
	for i := 0; i < length; i++ {
		item, err := DecodeField(reader, *field.Item, schema)
		if err != nil {
			return nil, errors.Wrapf(err, `DecodeArray error: item %d of "%s"`, i, field.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

// DecodeEnumArray unpacks the content integer by repeated divmod, which
// yields elements least-significant first; the encoder packed them
// most-significant first, so the digits come out reversed.
func DecodeEnumArray(reader *dbits.Reader, field Field, _ Schema) (any, error) {
	length, err := field.readLength(reader)
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeEnumArray error: length of "%s"`, field.Name)
	}
	options := field.Item.Options
	content, err := reader.ReadUBigInt(ContentWidth(len(options), length))
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeEnumArray error: content of "%s"`, field.Name)
	}
	optionCount := big.NewInt(int64(len(options)))
	remainder := new(big.Int)
	items := make([]any, 0, length)
	for i := 0; i < length; i++ {
		content.DivMod(content, optionCount, remainder)
		items = append(items, options[remainder.Int64()])
	}
	return lo.Reverse(items), nil
}

func DecodeUnion(reader *dbits.Reader, field Field, schema Schema) (any, error) {
	index, err := reader.ReadUInt(field.Discriminator.enumWidth())
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeUnion error: discriminator of "%s"`, field.Name)
	}
	if index >= uint64(len(field.Options)) {
		return nil, OptionIndexOutOfRangeError{
			FieldName: field.Name,
			Index:     index,
			Count:     len(field.Options),
		}
	}
	option := field.Options[index]
	record := orderedmap.New()
	record.Set(field.Discriminator.Name, option)
	for _, variantField := range field.Variants[option] {
		subValue, err := DecodeField(reader, variantField, schema)
		if err != nil {
			return nil, errors.Wrapf(err, `DecodeUnion error: variant "%s" of "%s"`, option, field.Name)
		}
		record.Set(variantField.Name, subValue)
	}
	return record, nil
}

func DecodeOptional(reader *dbits.Reader, field Field, schema Schema) (any, error) {
	present, err := reader.ReadUInt(1)
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeOptional error: presence bit of "%s"`, field.Name)
	}
	if present == 0 {
		return field.Default, nil
	}
	value, err := DecodeField(reader, *field.Inner, schema)
	if err != nil {
		return nil, errors.Wrapf(err, `DecodeOptional error: inner of "%s"`, field.Name)
	}
	return value, nil
}

func DecodeObject(reader *dbits.Reader, field Field, schema Schema) (any, error) {
	record := orderedmap.New()
	for _, subField := range field.Fields {
		subValue, err := DecodeField(reader, subField, schema)
		if err != nil {
			return nil, errors.Wrapf(err, `DecodeObject error: member "%s" of "%s"`, subField.Name, field.Name)
		}
		record.Set(subField.Name, subValue)
	}
	return record, nil
}

func DecodePointer(reader *dbits.Reader, field Field, schema Schema) (any, error) {
	target, err := ResolvePointer(field.Target, schema)
	if err != nil {
		return nil, err
	}
	return DecodeField(reader, target, schema)
}
