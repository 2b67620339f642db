package dvalid

import (
	"fmt"

	"densebit/dense/dfield"
	"github.com/samber/lo"
)

// Validate checks record against schema and reports every domain violation.
// It re-derives the checks from the field parameters and never calls into the
// encoder; a clean report means a later encode will not mask anything.
func Validate(schema dfield.Schema, record any) Issues {
	return validateMembers("", schema, record, schema)
}

func issue(path string, format string, args ...any) Issue {
	return Issue{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}

func validateMembers(path string, fields []dfield.Field, value any, schema dfield.Schema) Issues {
	record, ok := dfield.AsRecord(value)
	if !ok {
		return Issues{issue(rootPath(path), "expected a keyed record, got %v", value)}
	}
	issues := Issues{}
	for _, field := range fields {
		subValue, _ := record.Get(field.Name)
		issues = append(issues, ValidateField(path+"/"+field.Name, field, subValue, schema)...)
	}
	return issues
}

func rootPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func ValidateField(path string, field dfield.Field, value any, schema dfield.Schema) Issues {
	switch field.Kind {
	case dfield.FieldKindBool:
		if _, ok := value.(bool); !ok {
			return Issues{issue(path, "expected a boolean, got %v", value)}
		}
	case dfield.FieldKindInt:
		return validateInt(path, field, value)
	case dfield.FieldKindFixed:
		return validateFixed(path, field, value)
	case dfield.FieldKindEnum:
		return validateOption(path, field.Options, value)
	case dfield.FieldKindArray:
		return validateArray(path, field, value, schema)
	case dfield.FieldKindEnumArray:
		return validateEnumArray(path, field, value)
	case dfield.FieldKindOptional:
		if value == nil {
			return nil
		}
		return ValidateField(path, *field.Inner, value, schema)
	case dfield.FieldKindUnion:
		return validateUnion(path, field, value, schema)
	case dfield.FieldKindObject:
		return validateMembers(path, field.Fields, value, schema)
	case dfield.FieldKindPointer:
		target, err := dfield.ResolvePointer(field.Target, schema)
		if err != nil {
			return Issues{issue(path, "%s", err.Error())}
		}
		return ValidateField(path, target, value, schema)
	}
	return nil
}

func validateInt(path string, field dfield.Field, value any) Issues {
	valueInt, ok := dfield.AsInt(value)
	if !ok {
		return Issues{issue(path, "expected an integer, got %v", value)}
	}
	if valueInt < field.Min || valueInt > field.Max {
		return Issues{issue(path, "value %d outside range [%d, %d]", valueInt, field.Min, field.Max)}
	}
	return nil
}

func validateFixed(path string, field dfield.Field, value any) Issues {
	valueFloat, ok := dfield.AsFloat(value)
	if !ok {
		return Issues{issue(path, "expected a number, got %v", value)}
	}
	// half a precision step of slack so values that quantize onto the ends of
	// the grid still pass
	if valueFloat < field.FixedMin-field.Precision/2 ||
		valueFloat > field.FixedMax+field.Precision/2 {
		return Issues{issue(
			path,
			"value %v outside range [%v, %v]",
			valueFloat, field.FixedMin, field.FixedMax,
		)}
	}
	return nil
}

func validateOption(path string, options []string, value any) Issues {
	option, ok := value.(string)
	if !ok {
		return Issues{issue(path, "expected an option string, got %v", value)}
	}
	if !lo.Contains(options, option) {
		return Issues{issue(path, `option "%s" not among %v`, option, options)}
	}
	return nil
}

func validateLength(path string, field dfield.Field, length int) Issues {
	if length < field.MinLength || length > field.MaxLength {
		return Issues{issue(
			path,
			"length %d outside bounds [%d, %d]",
			length, field.MinLength, field.MaxLength,
		)}
	}
	return nil
}

func validateArray(path string, field dfield.Field, value any, schema dfield.Schema) Issues {
	items, ok := dfield.AsSlice(value)
	if !ok {
		return Issues{issue(path, "expected an ordered sequence, got %v", value)}
	}
	issues := validateLength(path, field, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s/%d", path, i)
		issues = append(issues, ValidateField(itemPath, *field.Item, item, schema)...)
	}
	return issues
}

func validateEnumArray(path string, field dfield.Field, value any) Issues {
	items, ok := dfield.AsSlice(value)
	if !ok {
		return Issues{issue(path, "expected an ordered sequence, got %v", value)}
	}
	issues := validateLength(path, field, len(items))
	for i, item := range items {
		itemPath := fmt.Sprintf("%s/%d", path, i)
		issues = append(issues, validateOption(itemPath, field.Item.Options, item)...)
	}
	return issues
}

func validateUnion(path string, field dfield.Field, value any, schema dfield.Schema) Issues {
	record, ok := dfield.AsRecord(value)
	if !ok {
		return Issues{issue(path, "expected a keyed record, got %v", value)}
	}
	discriminatorName := field.Discriminator.Name
	discriminatorValue, ok := record.Get(discriminatorName)
	if !ok {
		return Issues{issue(path, `missing discriminator "%s"`, discriminatorName)}
	}
	discriminatorPath := path + "/" + discriminatorName
	if issues := validateOption(discriminatorPath, field.Options, discriminatorValue); len(issues) > 0 {
		return issues
	}
	option := discriminatorValue.(string)
	issues := Issues{}
	for _, variantField := range field.Variants[option] {
		subValue, _ := record.Get(variantField.Name)
		subPath := path + "/" + variantField.Name
		issues = append(issues, ValidateField(subPath, variantField, subValue, schema)...)
	}
	return issues
}
