package dfield

import (
	"fmt"
)

type (
	UnresolvedPointerError struct {
		Target string
	}
)

func (r UnresolvedPointerError) Error() string {
	return fmt.Sprintf(`pointer target "%s" does not resolve to any field in the schema`, r.Target)
}

// ResolvePointer finds the first field named target by depth-first search
// from the schema root. Pointer fields themselves are never descended into,
// so a self-referential schema cannot send the search into a loop; the
// visited set guards against field lists shared between variants.
func ResolvePointer(target string, schema Schema) (Field, error) {
	visited := map[*Field]struct{}{}
	if found := findByName(target, schema, visited); found != nil {
		return *found, nil
	}
	return Field{}, UnresolvedPointerError{Target: target}
}

func findByName(target string, fields []Field, visited map[*Field]struct{}) *Field {
	for i := range fields {
		field := &fields[i]
		if _, ok := visited[field]; ok {
			continue
		}
		visited[field] = struct{}{}
		if field.Name == target {
			return field
		}
		if found := findInChildren(target, field, visited); found != nil {
			return found
		}
	}
	return nil
}

func findInChildren(target string, field *Field, visited map[*Field]struct{}) *Field {
	switch field.Kind {
	case FieldKindObject:
		return findByName(target, field.Fields, visited)
	case FieldKindArray, FieldKindEnumArray:
		return findByName(target, []Field{*field.Item}, visited)
	case FieldKindOptional:
		return findByName(target, []Field{*field.Inner}, visited)
	case FieldKindUnion:
		if found := findByName(target, []Field{*field.Discriminator}, visited); found != nil {
			return found
		}
		for _, option := range field.Options {
			if found := findByName(target, field.Variants[option], visited); found != nil {
				return found
			}
		}
	}
	return nil
}
