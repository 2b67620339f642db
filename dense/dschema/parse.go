package dschema

import (
	"densebit/dense/dfield"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

func Parse(documentBytes []byte) (dfield.Schema, error) {
	document := Document{}
	if err := json.Unmarshal(documentBytes, &document); err != nil {
		return nil, errors.Wrap(err, "Parse error: unmarshal schema document")
	}
	return BuildFields(document.Fields)
}

func BuildFields(docs []FieldDoc) ([]dfield.Field, error) {
	fields := make([]dfield.Field, 0, len(docs))
	for _, doc := range docs {
		field, err := BuildField(doc)
		if err != nil {
			return nil, errors.Wrapf(err, `BuildFields error: field "%s"`, doc.Name)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (r FieldDoc) requireFloat(value *float64, parameter string) (float64, error) {
	if value == nil {
		return 0, MissingParameterError{
			FieldName: r.Name,
			Parameter: parameter,
		}
	}
	return *value, nil
}

func (r FieldDoc) requireInt(value *int, parameter string) (int, error) {
	if value == nil {
		return 0, MissingParameterError{
			FieldName: r.Name,
			Parameter: parameter,
		}
	}
	return *value, nil
}

func (r FieldDoc) requireDoc(value *FieldDoc, parameter string) (FieldDoc, error) {
	if value == nil {
		return FieldDoc{}, MissingParameterError{
			FieldName: r.Name,
			Parameter: parameter,
		}
	}
	return *value, nil
}

func (r FieldDoc) lengthBounds() (int, int, error) {
	minLength, err := r.requireInt(r.MinLength, "min_length")
	if err != nil {
		return 0, 0, err
	}
	maxLength, err := r.requireInt(r.MaxLength, "max_length")
	if err != nil {
		return 0, 0, err
	}
	return minLength, maxLength, nil
}

func BuildField(doc FieldDoc) (dfield.Field, error) {
	switch dfield.FieldKind(doc.Kind) {
	case dfield.FieldKindBool:
		return dfield.NewBoolField(doc.Name), nil
	case dfield.FieldKindInt:
		return buildIntField(doc)
	case dfield.FieldKindEnum:
		return dfield.NewEnumField(doc.Name, doc.Options)
	case dfield.FieldKindFixed:
		return buildFixedField(doc)
	case dfield.FieldKindArray:
		return buildSequenceField(doc, dfield.NewArrayField)
	case dfield.FieldKindEnumArray:
		return buildSequenceField(doc, dfield.NewEnumArrayField)
	case dfield.FieldKindUnion:
		return buildUnionField(doc)
	case dfield.FieldKindOptional:
		return buildOptionalField(doc)
	case dfield.FieldKindObject:
		fields, err := BuildFields(doc.Fields)
		if err != nil {
			return dfield.Field{}, err
		}
		return dfield.NewObjectField(doc.Name, fields), nil
	case dfield.FieldKindPointer:
		if doc.Target == "" {
			return dfield.Field{}, MissingParameterError{
				FieldName: doc.Name,
				Parameter: "target",
			}
		}
		return dfield.NewPointerField(doc.Name, doc.Target), nil
	}
	return dfield.Field{}, UnknownKindError{
		FieldName: doc.Name,
		Kind:      doc.Kind,
	}
}

func buildIntField(doc FieldDoc) (dfield.Field, error) {
	min, err := doc.requireFloat(doc.Min, "min")
	if err != nil {
		return dfield.Field{}, err
	}
	max, err := doc.requireFloat(doc.Max, "max")
	if err != nil {
		return dfield.Field{}, err
	}
	return dfield.NewIntField(doc.Name, int(min), int(max))
}

func buildFixedField(doc FieldDoc) (dfield.Field, error) {
	min, err := doc.requireFloat(doc.Min, "min")
	if err != nil {
		return dfield.Field{}, err
	}
	max, err := doc.requireFloat(doc.Max, "max")
	if err != nil {
		return dfield.Field{}, err
	}
	precision, err := doc.requireFloat(doc.Precision, "precision")
	if err != nil {
		return dfield.Field{}, err
	}
	return dfield.NewFixedField(doc.Name, min, max, precision)
}

func buildSequenceField(
	doc FieldDoc,
	construct func(string, int, int, dfield.Field) (dfield.Field, error),
) (dfield.Field, error) {
	minLength, maxLength, err := doc.lengthBounds()
	if err != nil {
		return dfield.Field{}, err
	}
	itemDoc, err := doc.requireDoc(doc.Item, "item")
	if err != nil {
		return dfield.Field{}, err
	}
	item, err := BuildField(itemDoc)
	if err != nil {
		return dfield.Field{}, err
	}
	return construct(doc.Name, minLength, maxLength, item)
}

func buildUnionField(doc FieldDoc) (dfield.Field, error) {
	discriminatorDoc, err := doc.requireDoc(doc.Discriminator, "discriminator")
	if err != nil {
		return dfield.Field{}, err
	}
	discriminator, err := BuildField(discriminatorDoc)
	if err != nil {
		return dfield.Field{}, err
	}
	variants := make(map[string][]dfield.Field, len(doc.Variants))
	for option, variantDocs := range doc.Variants {
		variantFields, err := BuildFields(variantDocs)
		if err != nil {
			return dfield.Field{}, errors.Wrapf(err, `buildUnionField error: variant "%s"`, option)
		}
		variants[option] = variantFields
	}
	return dfield.NewUnionField(doc.Name, discriminator, variants)
}

func buildOptionalField(doc FieldDoc) (dfield.Field, error) {
	innerDoc, err := doc.requireDoc(doc.Inner, "inner")
	if err != nil {
		return dfield.Field{}, err
	}
	inner, err := BuildField(innerDoc)
	if err != nil {
		return dfield.Field{}, err
	}
	if doc.Default != nil {
		return dfield.NewOptionalFieldWithDefault(doc.Name, inner, doc.Default), nil
	}
	return dfield.NewOptionalField(doc.Name, inner), nil
}
