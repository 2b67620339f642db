package dschema

import (
	"densebit/dense/dfield"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func Serialize(schema dfield.Schema) ([]byte, error) {
	document := Document{
		Fields: lo.Map(
			schema,
			func(field dfield.Field, _ int) FieldDoc {
				return toDoc(field)
			},
		),
	}
	documentBytes, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "Serialize error: marshal schema document")
	}
	return documentBytes, nil
}

func toDocPtr(field *dfield.Field) *FieldDoc {
	if field == nil {
		return nil
	}
	doc := toDoc(*field)
	return &doc
}

func toDoc(field dfield.Field) FieldDoc {
	doc := FieldDoc{
		Name: field.Name,
		Kind: string(field.Kind),
	}
	switch field.Kind {
	case dfield.FieldKindInt:
		doc.Min = lo.ToPtr(float64(field.Min))
		doc.Max = lo.ToPtr(float64(field.Max))
	case dfield.FieldKindFixed:
		doc.Min = lo.ToPtr(field.FixedMin)
		doc.Max = lo.ToPtr(field.FixedMax)
		doc.Precision = lo.ToPtr(field.Precision)
	case dfield.FieldKindEnum:
		doc.Options = field.Options
	case dfield.FieldKindArray, dfield.FieldKindEnumArray:
		doc.MinLength = lo.ToPtr(field.MinLength)
		doc.MaxLength = lo.ToPtr(field.MaxLength)
		doc.Item = toDocPtr(field.Item)
	case dfield.FieldKindUnion:
		doc.Discriminator = toDocPtr(field.Discriminator)
		doc.Variants = make(map[string][]FieldDoc, len(field.Variants))
		for option, variantFields := range field.Variants {
			doc.Variants[option] = lo.Map(
				variantFields,
				func(variantField dfield.Field, _ int) FieldDoc {
					return toDoc(variantField)
				},
			)
		}
	case dfield.FieldKindOptional:
		doc.Inner = toDocPtr(field.Inner)
		doc.Default = field.Default
	case dfield.FieldKindObject:
		doc.Fields = lo.Map(
			field.Fields,
			func(subField dfield.Field, _ int) FieldDoc {
				return toDoc(subField)
			},
		)
	case dfield.FieldKindPointer:
		doc.Target = field.Target
	}
	return doc
}
