// Package ddefault synthesizes the zero-position value of a schema: every
// field at its minimum, first option, or shortest length. Useful as a
// starting record for callers that fill fields in gradually.
package ddefault

import (
	"densebit/dense/dfield"
	"densebit/ds"
	"github.com/iancoleman/orderedmap"
)

// Generate builds the default record of a whole schema.
func Generate(schema dfield.Schema) *orderedmap.OrderedMap {
	return generateMembers(schema, schema)
}

func generateMembers(fields []dfield.Field, schema dfield.Schema) *orderedmap.OrderedMap {
	record := orderedmap.New()
	for _, field := range fields {
		record.Set(field.Name, GenerateField(field, schema))
	}
	return record
}

// GenerateField builds the default value of a single field. Pointer fields
// always yield nil: following the target could recurse forever on a
// self-referential schema, so no generated data ever contains recursive
// structure. This is a documented limitation, not an oversight.
func GenerateField(field dfield.Field, schema dfield.Schema) any {
	switch field.Kind {
	case dfield.FieldKindBool:
		return false
	case dfield.FieldKindInt:
		return field.Min
	case dfield.FieldKindFixed:
		return field.FixedMin
	case dfield.FieldKindEnum:
		return field.Options[0]
	case dfield.FieldKindArray:
		items := make([]any, 0, field.MinLength)
		for i := 0; i < field.MinLength; i++ {
			items = append(items, GenerateField(*field.Item, schema))
		}
		return items
	case dfield.FieldKindEnumArray:
		return ds.Repeat(field.MinLength, field.Item.Options[0])
	case dfield.FieldKindOptional:
		return field.Default
	case dfield.FieldKindUnion:
		option := field.Options[0]
		record := orderedmap.New()
		record.Set(field.Discriminator.Name, option)
		for _, variantField := range field.Variants[option] {
			record.Set(variantField.Name, GenerateField(variantField, schema))
		}
		return record
	case dfield.FieldKindObject:
		return generateMembers(field.Fields, schema)
	case dfield.FieldKindPointer:
		return nil
	}
	return nil
}
