package dfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePointer_TopLevel(t *testing.T) {
	schema := Schema{
		NewBoolField("flag"),
		mustIntField(t, "count", 0, 7),
	}

	field, err := ResolvePointer("count", schema)
	require.NoError(t, err)
	assert.Equal(t, FieldKindInt, field.Kind)
	assert.Equal(t, 7, field.Max)
}

func TestResolvePointer_Nested(t *testing.T) {
	inner := mustIntField(t, "depth", 0, 3)
	schema := Schema{
		NewObjectField("outer", []Field{
			NewOptionalField("maybe", NewObjectField("inner", []Field{inner})),
		}),
	}

	field, err := ResolvePointer("depth", schema)
	require.NoError(t, err)
	assert.Equal(t, 3, field.Max)
}

func TestResolvePointer_DepthFirstOrder(t *testing.T) {
	// the first match in depth-first order wins: the "size" nested under the
	// earlier top-level field shadows the later top-level "size"
	schema := Schema{
		NewObjectField("box", []Field{mustIntField(t, "size", 0, 10)}),
		mustIntField(t, "size", 0, 100),
	}

	field, err := ResolvePointer("size", schema)
	require.NoError(t, err)
	assert.Equal(t, 10, field.Max)
}

func TestResolvePointer_InsideUnionVariants(t *testing.T) {
	union, err := NewUnionField(
		"shape",
		mustEnumField(t, "kind", "circle", "rect"),
		map[string][]Field{
			"circle": {mustIntField(t, "radius", 0, 50)},
			"rect":   {mustIntField(t, "w", 0, 50)},
		},
	)
	require.NoError(t, err)
	schema := Schema{union}

	field, err := ResolvePointer("radius", schema)
	require.NoError(t, err)
	assert.Equal(t, 50, field.Max)

	field, err = ResolvePointer("kind", schema)
	require.NoError(t, err)
	assert.Equal(t, FieldKindEnum, field.Kind)
}

func TestResolvePointer_Unresolved(t *testing.T) {
	schema := Schema{NewBoolField("flag")}

	_, err := ResolvePointer("missing", schema)
	assert.ErrorIs(t, err, UnresolvedPointerError{Target: "missing"})
}
