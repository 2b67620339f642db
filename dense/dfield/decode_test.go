package dfield

import (
	"testing"

	"densebit/dense/dbits"
	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, field Field, value any, schema Schema) any {
	writer := dbits.NewWriter()
	require.NoError(t, EncodeField(writer, field, value, schema))

	reader := dbits.NewReader(writer.BigInt(), writer.BitCount())
	decoded, err := DecodeField(reader, field, schema)
	require.NoError(t, err)
	assert.Equal(t, 0, reader.Remaining(), "decode must consume every written bit")
	return decoded
}

func TestDecodeBool_RoundTrip(t *testing.T) {
	assert.Equal(t, true, roundTrip(t, NewBoolField("flag"), true, nil))
	assert.Equal(t, false, roundTrip(t, NewBoolField("flag"), false, nil))
}

func TestDecodeInt_RoundTrip(t *testing.T) {
	field := mustIntField(t, "rank", -100, 1000)
	assert.Equal(t, 42, roundTrip(t, field, 42, nil))
	assert.Equal(t, -100, roundTrip(t, field, -100, nil))
	assert.Equal(t, 1000, roundTrip(t, field, 1000, nil))
}

func TestDecodeInt_CollapsedRangeNeedsNoBits(t *testing.T) {
	field := mustIntField(t, "five", 5, 5)
	reader := dbits.NewReader(writerOf(t).BigInt(), 0)

	value, err := DecodeInt(reader, field, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, value)
}

func writerOf(t *testing.T) *dbits.Writer {
	t.Helper()
	return dbits.NewWriter()
}

func TestDecodeFixed_RoundTrip(t *testing.T) {
	field := mustFixedField(t, "temperature", -40, 125, 0.1)
	decoded := roundTrip(t, field, 23.5, nil)
	assert.InDelta(t, 23.5, decoded, 0.05)

	decoded = roundTrip(t, field, -39.97, nil)
	assert.InDelta(t, -40.0, decoded, 0.05)
}

func TestDecodeEnum_RoundTrip(t *testing.T) {
	field := mustEnumField(t, "mode", "low", "mid", "high")
	assert.Equal(t, "high", roundTrip(t, field, "high", nil))
	assert.Equal(t, "low", roundTrip(t, field, "low", nil))
}

func TestDecodeArray_RoundTrip(t *testing.T) {
	field, err := NewArrayField("scores", 0, 10, mustIntField(t, "score", 0, 100))
	require.NoError(t, err)

	assert.Equal(t, []any{95, 87, 92, 88}, roundTrip(t, field, []any{95, 87, 92, 88}, nil))
	assert.Equal(t, []any{}, roundTrip(t, field, []any{}, nil))
}

func TestDecodeEnumArray_RoundTrip(t *testing.T) {
	field, err := NewEnumArrayField(
		"moves", 0, 10,
		mustEnumField(t, "move", "rock", "paper", "scissors"),
	)
	require.NoError(t, err)

	moves := []any{"rock", "scissors", "scissors", "paper", "rock"}
	assert.Equal(t, moves, roundTrip(t, field, moves, nil))
}

func TestDecodeOptional_AbsentYieldsDefault(t *testing.T) {
	plain := NewOptionalField("nickname", NewBoolField("n"))
	assert.Nil(t, roundTrip(t, plain, nil, nil))

	withDefault := NewOptionalFieldWithDefault("nickname", NewBoolField("n"), true)
	assert.Equal(t, true, roundTrip(t, withDefault, nil, nil))
}

func TestDecodeUnion_RoundTrip(t *testing.T) {
	union, err := NewUnionField(
		"shape",
		mustEnumField(t, "kind", "circle", "rect"),
		map[string][]Field{
			"circle": {mustIntField(t, "radius", 0, 100)},
			"rect":   {mustIntField(t, "w", 0, 100), mustIntField(t, "h", 0, 100)},
		},
	)
	require.NoError(t, err)

	decoded := roundTrip(t, union, map[string]any{"kind": "rect", "w": 3, "h": 4}, nil)
	record, ok := decoded.(*orderedmap.OrderedMap)
	require.True(t, ok)

	// discriminator first, then the variant fields in declared order
	assert.Equal(t, []string{"kind", "w", "h"}, record.Keys())
	kind, _ := record.Get("kind")
	assert.Equal(t, "rect", kind)
	w, _ := record.Get("w")
	assert.Equal(t, 3, w)
	h, _ := record.Get("h")
	assert.Equal(t, 4, h)
}

func TestDecodeObject_RoundTrip(t *testing.T) {
	object := NewObjectField("point", []Field{
		mustIntField(t, "x", 0, 15),
		mustIntField(t, "y", 0, 15),
	})

	decoded := roundTrip(t, object, map[string]any{"x": 3, "y": 9}, nil)
	record, ok := decoded.(*orderedmap.OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, record.Keys())
	y, _ := record.Get("y")
	assert.Equal(t, 9, y)
}

func TestDecodePointer_RoundTrip(t *testing.T) {
	schema := Schema{
		mustIntField(t, "count", 0, 255),
		NewPointerField("alias", "count"),
	}

	assert.Equal(t, 77, roundTrip(t, schema[1], 77, schema))
}

func TestDecode_InsufficientBits(t *testing.T) {
	field := mustIntField(t, "rank", 0, 1000)
	reader := dbits.NewReader(writerOf(t).BigInt(), 5)

	_, err := DecodeInt(reader, field, nil)
	assert.ErrorContains(t, err, "insufficient bits")
}
