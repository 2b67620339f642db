// Package dtypegen emits TypeScript type declarations describing the value
// shape a schema encodes, for front ends that consume the same payloads.
package dtypegen

import (
	"fmt"
	"strings"

	"densebit/dense/dfield"
	"github.com/samber/lo"
)

// Declare renders one named declaration for the schema's record shape,
// preceded by a named declaration per pointer target so recursive structures
// come out as ordinary self-referential TypeScript types.
func Declare(name string, schema dfield.Schema) string {
	targets := collectPointerTargets(schema)
	builder := strings.Builder{}
	for _, target := range targets {
		targetField, err := dfield.ResolvePointer(target, schema)
		if err != nil {
			continue
		}
		fmt.Fprintf(
			&builder,
			"export type %s = %s;\n\n",
			PascalCase(target), typeOf(targetField, schema),
		)
	}
	fmt.Fprintf(&builder, "export type %s = {\n", PascalCase(name))
	for _, field := range schema {
		fmt.Fprintf(&builder, "  %s: %s;\n", field.Name, typeOf(field, schema))
	}
	builder.WriteString("};\n")
	return builder.String()
}

func PascalCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	return strings.Join(
		lo.Map(
			words,
			func(word string, _ int) string {
				return strings.ToUpper(word[:1]) + word[1:]
			},
		),
		"",
	)
}

func typeOf(field dfield.Field, schema dfield.Schema) string {
	switch field.Kind {
	case dfield.FieldKindBool:
		return "boolean"
	case dfield.FieldKindInt, dfield.FieldKindFixed:
		return "number"
	case dfield.FieldKindEnum:
		return optionUnion(field.Options)
	case dfield.FieldKindArray:
		return fmt.Sprintf("Array<%s>", typeOf(*field.Item, schema))
	case dfield.FieldKindEnumArray:
		return fmt.Sprintf("Array<%s>", optionUnion(field.Item.Options))
	case dfield.FieldKindOptional:
		return typeOf(*field.Inner, schema) + " | null"
	case dfield.FieldKindUnion:
		return variantUnion(field, schema)
	case dfield.FieldKindObject:
		return memberObject(field.Fields, schema)
	case dfield.FieldKindPointer:
		// named reference; the declaration is emitted by Declare
		return PascalCase(field.Target)
	}
	return "unknown"
}

func optionUnion(options []string) string {
	return strings.Join(
		lo.Map(
			options,
			func(option string, _ int) string {
				return fmt.Sprintf(`"%s"`, option)
			},
		),
		" | ",
	)
}

func memberObject(fields []dfield.Field, schema dfield.Schema) string {
	members := lo.Map(
		fields,
		func(field dfield.Field, _ int) string {
			return fmt.Sprintf("%s: %s", field.Name, typeOf(field, schema))
		},
	)
	return "{ " + strings.Join(members, "; ") + " }"
}

func variantUnion(field dfield.Field, schema dfield.Schema) string {
	variants := lo.Map(
		field.Options,
		func(option string, _ int) string {
			members := []string{
				fmt.Sprintf(`%s: "%s"`, field.Discriminator.Name, option),
			}
			for _, variantField := range field.Variants[option] {
				members = append(
					members,
					fmt.Sprintf("%s: %s", variantField.Name, typeOf(variantField, schema)),
				)
			}
			return "{ " + strings.Join(members, "; ") + " }"
		},
	)
	return "(" + strings.Join(variants, " | ") + ")"
}

func collectPointerTargets(fields []dfield.Field) []string {
	targets := make([]string, 0)
	seen := map[string]struct{}{}
	var walk func(fields []dfield.Field)
	walk = func(fields []dfield.Field) {
		for _, field := range fields {
			switch field.Kind {
			case dfield.FieldKindPointer:
				if _, ok := seen[field.Target]; ok {
					continue
				}
				seen[field.Target] = struct{}{}
				targets = append(targets, field.Target)
			case dfield.FieldKindObject:
				walk(field.Fields)
			case dfield.FieldKindArray, dfield.FieldKindEnumArray:
				walk([]dfield.Field{*field.Item})
			case dfield.FieldKindOptional:
				walk([]dfield.Field{*field.Inner})
			case dfield.FieldKindUnion:
				for _, option := range field.Options {
					walk(field.Variants[option])
				}
			}
		}
	}
	walk(fields)
	return targets
}
