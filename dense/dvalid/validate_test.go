package dvalid

import (
	"testing"

	"densebit/dense/dfield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSchema(t *testing.T) dfield.Schema {
	t.Helper()
	rank, err := dfield.NewIntField("rank", 0, 1000)
	require.NoError(t, err)
	mode, err := dfield.NewEnumField("mode", []string{"low", "mid", "high"})
	require.NoError(t, err)
	score, err := dfield.NewIntField("score", 0, 100)
	require.NoError(t, err)
	scores, err := dfield.NewArrayField("scores", 0, 3, score)
	require.NoError(t, err)
	temperature, err := dfield.NewFixedField("temperature", -40, 125, 0.1)
	require.NoError(t, err)
	shape, err := dfield.NewUnionField(
		"shape",
		mustEnum(t, "type", "circle", "rect"),
		map[string][]dfield.Field{
			"circle": {mustInt(t, "radius", 0, 100)},
			"rect":   {mustInt(t, "w", 0, 100), mustInt(t, "h", 0, 100)},
		},
	)
	require.NoError(t, err)
	return dfield.Schema{
		rank,
		mode,
		scores,
		temperature,
		dfield.NewOptionalField("nickname", dfield.NewBoolField("n")),
		shape,
	}
}

func mustEnum(t *testing.T, name string, options ...string) dfield.Field {
	t.Helper()
	field, err := dfield.NewEnumField(name, options)
	require.NoError(t, err)
	return field
}

func mustInt(t *testing.T, name string, min, max int) dfield.Field {
	t.Helper()
	field, err := dfield.NewIntField(name, min, max)
	require.NoError(t, err)
	return field
}

func validRecord() map[string]any {
	return map[string]any{
		"rank":        42,
		"mode":        "mid",
		"scores":      []any{1, 2, 3},
		"temperature": 23.5,
		"nickname":    nil,
		"shape":       map[string]any{"type": "circle", "radius": 10},
	}
}

func TestValidate_CleanRecord(t *testing.T) {
	issues := Validate(buildSchema(t), validRecord())
	assert.Empty(t, issues)
	assert.NoError(t, issues.OrNil())
}

func TestValidate_OutOfRangeInt(t *testing.T) {
	record := validRecord()
	record["rank"] = 2000

	issues := Validate(buildSchema(t), record)
	require.Len(t, issues, 1)
	assert.Equal(t, "/rank", issues[0].Path)
	assert.Contains(t, issues[0].Message, "outside range")
}

func TestValidate_UnknownOption(t *testing.T) {
	record := validRecord()
	record["mode"] = "turbo"

	issues := Validate(buildSchema(t), record)
	require.Len(t, issues, 1)
	assert.Equal(t, "/mode", issues[0].Path)
}

func TestValidate_ArrayIssuesCarryIndexPaths(t *testing.T) {
	record := validRecord()
	record["scores"] = []any{1, 999, 3, 4}

	issues := Validate(buildSchema(t), record)
	require.Len(t, issues, 2)
	assert.Equal(t, "/scores", issues[0].Path)
	assert.Contains(t, issues[0].Message, "length 4 outside bounds")
	assert.Equal(t, "/scores/1", issues[1].Path)
}

func TestValidate_FixedRangeWithQuantizationSlack(t *testing.T) {
	record := validRecord()
	record["temperature"] = 125.04

	issues := Validate(buildSchema(t), record)
	assert.Empty(t, issues, "within half a precision step of the bound")

	record["temperature"] = 125.2
	issues = Validate(buildSchema(t), record)
	require.Len(t, issues, 1)
	assert.Equal(t, "/temperature", issues[0].Path)
}

func TestValidate_UnionIssues(t *testing.T) {
	record := validRecord()
	record["shape"] = map[string]any{"radius": 10}

	issues := Validate(buildSchema(t), record)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `missing discriminator "type"`)

	record["shape"] = map[string]any{"type": "circle", "radius": 999}
	issues = Validate(buildSchema(t), record)
	require.Len(t, issues, 1)
	assert.Equal(t, "/shape/radius", issues[0].Path)
}

func TestValidate_CollectsMultipleIssues(t *testing.T) {
	record := validRecord()
	record["rank"] = -1
	record["mode"] = "turbo"
	record["nickname"] = "not a bool"

	issues := Validate(buildSchema(t), record)
	assert.Len(t, issues, 3)
	assert.Error(t, issues.OrNil())
}

func TestIssues_ErrorSummary(t *testing.T) {
	issues := Issues{
		{Path: "/a", Message: "first"},
		{Path: "/b", Message: "second"},
		{Path: "/c", Message: "third"},
		{Path: "/d", Message: "fourth"},
	}
	summary := issues.Error()
	assert.Contains(t, summary, "first at /a")
	assert.Contains(t, summary, "(total 4)")
	assert.NotContains(t, summary, "fourth")
}
