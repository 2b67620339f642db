package dfield

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/pkg/errors"
)

type (
	NotConstantWidthError struct {
		FieldName string
		Kind      FieldKind
	}
)

func (r NotConstantWidthError) Error() string {
	return fmt.Sprintf(
		`field "%s" of kind "%s" has a value-dependent width`,
		r.FieldName, r.Kind,
	)
}

// countWidth is the number of bits needed to tell count distinct values
// apart. A count of 1 collapses to zero bits: nothing is written, and the
// decoder reconstructs the sole possible value from the schema alone.
func countWidth(count uint64) int {
	if count <= 1 {
		return 0
	}
	return bits.Len64(count - 1)
}

func (r Field) intWidth() int {
	return countWidth(uint64(r.Max-r.Min) + 1)
}

// fixedScale is the integer reciprocal of the precision, the factor that maps
// values onto the quantization grid.
func (r Field) fixedScale() float64 {
	return math.Round(1 / r.Precision)
}

func (r Field) fixedLevels() uint64 {
	return uint64(math.Round((r.FixedMax-r.FixedMin)*r.fixedScale())) + 1
}

func (r Field) fixedWidth() int {
	return countWidth(r.fixedLevels())
}

func (r Field) enumWidth() int {
	return countWidth(uint64(len(r.Options)))
}

func (r Field) LengthWidth() int {
	return countWidth(uint64(r.MaxLength-r.MinLength) + 1)
}

// ContentWidth is ceil(length * log2(optionCount)), the size of the
// mixed-radix packed content of an enum array, computed exactly as the bit
// length of optionCount^length - 1 to keep float rounding out of the stream.
func ContentWidth(optionCount int, length int) int {
	if length == 0 || optionCount <= 1 {
		return 0
	}
	power := new(big.Int).Exp(
		big.NewInt(int64(optionCount)),
		big.NewInt(int64(length)),
		nil,
	)
	power.Sub(power, big.NewInt(1))
	return power.BitLen()
}

// ConstantWidth reports the fixed bit width of the scalar kinds. The
// container kinds have value-dependent widths and go through CalculateWidth.
func ConstantWidth(field Field) (int, error) {
	switch field.Kind {
	case FieldKindBool:
		return 1, nil
	case FieldKindInt:
		return field.intWidth(), nil
	case FieldKindEnum:
		return field.enumWidth(), nil
	case FieldKindFixed:
		return field.fixedWidth(), nil
	}
	return 0, NotConstantWidthError{
		FieldName: field.Name,
		Kind:      field.Kind,
	}
}

// CalculateWidth reports the exact number of bits encoding value against
// field would consume. The encoder and the size-analysis tooling share this
// one set of formulas; any drift between them would break round-tripping.
func CalculateWidth(field Field, value any, schema Schema) (int, error) {
	switch field.Kind {
	case FieldKindBool, FieldKindInt, FieldKindEnum, FieldKindFixed:
		return ConstantWidth(field)
	case FieldKindArray:
		return calculateArrayWidth(field, value, schema)
	case FieldKindEnumArray:
		return calculateEnumArrayWidth(field, value)
	case FieldKindOptional:
		return calculateOptionalWidth(field, value, schema)
	case FieldKindUnion:
		return calculateUnionWidth(field, value, schema)
	case FieldKindObject:
		return calculateObjectWidth(field.Name, field.Fields, value, schema)
	case FieldKindPointer:
		target, err := ResolvePointer(field.Target, schema)
		if err != nil {
			return 0, err
		}
		return CalculateWidth(target, value, schema)
	}
	return 0, NoCodecFuncError{
		FieldName: field.Name,
		Kind:      field.Kind,
	}
}

func calculateArrayWidth(field Field, value any, schema Schema) (int, error) {
	items, ok := AsSlice(value)
	if !ok {
		return 0, NotAnArrayError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	total := field.LengthWidth()
	for _, item := range items {
		itemWidth, err := CalculateWidth(*field.Item, item, schema)
		if err != nil {
			return 0, errors.Wrapf(err, `calculateArrayWidth error: item of "%s"`, field.Name)
		}
		total += itemWidth
	}
	return total, nil
}

func calculateEnumArrayWidth(field Field, value any) (int, error) {
	items, ok := AsSlice(value)
	if !ok {
		return 0, NotAnArrayError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	return field.LengthWidth() + ContentWidth(len(field.Item.Options), len(items)), nil
}

func calculateOptionalWidth(field Field, value any, schema Schema) (int, error) {
	if value == nil {
		return 1, nil
	}
	innerWidth, err := CalculateWidth(*field.Inner, value, schema)
	if err != nil {
		return 0, err
	}
	return 1 + innerWidth, nil
}

func calculateUnionWidth(field Field, value any, schema Schema) (int, error) {
	record, ok := AsRecord(value)
	if !ok {
		return 0, NotARecordError{
			FieldName: field.Name,
			Value:     value,
		}
	}
	option, variant, err := selectVariant(field, record)
	if err != nil {
		return 0, err
	}
	variantWidth, err := calculateObjectWidth(field.Name+"."+option, variant, value, schema)
	if err != nil {
		return 0, err
	}
	return field.Discriminator.enumWidth() + variantWidth, nil
}

func calculateObjectWidth(name string, fields []Field, value any, schema Schema) (int, error) {
	record, ok := AsRecord(value)
	if !ok {
		return 0, NotARecordError{
			FieldName: name,
			Value:     value,
		}
	}
	total := 0
	for _, subField := range fields {
		subValue, _ := record.Get(subField.Name)
		subWidth, err := CalculateWidth(subField, subValue, schema)
		if err != nil {
			return 0, errors.Wrapf(err, `calculateObjectWidth error: member of "%s"`, name)
		}
		total += subWidth
	}
	return total, nil
}
