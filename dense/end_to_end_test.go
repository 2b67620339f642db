package dense

import (
	"testing"

	"densebit/dense/dalpha"
	"densebit/dense/dfield"
	"densebit/dense/dsize"
	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EndToEndTestSuite struct {
	suite.Suite
	R *require.Assertions

	Bits      *dalpha.Alphabet
	Telemetry Schema
	Scores    Schema
	Moves     Schema
	Nickname  Schema
	List      Schema
}

func (suite *EndToEndTestSuite) SetupSuite() {
	suite.R = suite.Require()
	suite.Bits = dalpha.MustNew("01")

	rank, err := dfield.NewIntField("rank", 0, 1000)
	suite.R.NoError(err)
	temperature, err := dfield.NewFixedField("temperature", -40, 125, 0.1)
	suite.R.NoError(err)
	mode, err := dfield.NewEnumField("mode", []string{"low", "mid", "high"})
	suite.R.NoError(err)
	suite.Telemetry = Schema{
		rank,
		dfield.NewBoolField("active"),
		temperature,
		mode,
	}

	score, err := dfield.NewIntField("score", 0, 100)
	suite.R.NoError(err)
	scores, err := dfield.NewArrayField("scores", 0, 10, score)
	suite.R.NoError(err)
	suite.Scores = Schema{scores}

	move, err := dfield.NewEnumField("move", []string{"rock", "paper", "scissors"})
	suite.R.NoError(err)
	moves, err := dfield.NewEnumArrayField("moves", 0, 10, move)
	suite.R.NoError(err)
	suite.Moves = Schema{moves}

	suite.Nickname = Schema{
		dfield.NewOptionalField("nickname", dfield.NewBoolField("n")),
	}

	value, err := dfield.NewIntField("value", 0, 100)
	suite.R.NoError(err)
	suite.List = Schema{
		dfield.NewObjectField("node", []dfield.Field{
			value,
			dfield.NewOptionalField("next", dfield.NewPointerField("pointer", "node")),
		}),
	}
}

func (suite *EndToEndTestSuite) TestTelemetryBitExact() {
	record := map[string]any{
		"rank":        42,
		"active":      true,
		"temperature": 23.5,
		"mode":        "high",
	}
	encoded, err := Encode(suite.Telemetry, record, suite.Bits)
	suite.R.NoError(err)
	suite.R.Len(encoded, 24)

	decoded, err := Decode(suite.Telemetry, encoded, suite.Bits)
	suite.R.NoError(err)

	rank, _ := decoded.Get("rank")
	suite.R.Equal(42, rank)
	active, _ := decoded.Get("active")
	suite.R.Equal(true, active)
	temperature, _ := decoded.Get("temperature")
	suite.R.InDelta(23.5, temperature, 0.05)
	mode, _ := decoded.Get("mode")
	suite.R.Equal("high", mode)
}

func (suite *EndToEndTestSuite) TestScoresBitExact() {
	encoded, err := Encode(suite.Scores, map[string]any{"scores": []any{95}}, suite.Bits)
	suite.R.NoError(err)
	suite.R.Len(encoded, 11)

	encoded, err = Encode(
		suite.Scores,
		map[string]any{"scores": []any{95, 87, 92, 88}},
		suite.Bits,
	)
	suite.R.NoError(err)
	suite.R.Len(encoded, 32)

	decoded, err := Decode(suite.Scores, encoded, suite.Bits)
	suite.R.NoError(err)
	scores, _ := decoded.Get("scores")
	suite.R.Equal([]any{95, 87, 92, 88}, scores)
}

// 11 bits rendered as 2 base64url symbols leave 1 bit of trailing padding;
// decoding must stay aligned to the front of the stream regardless.
func (suite *EndToEndTestSuite) TestPartialSymbolPaddingRoundTrip() {
	record := map[string]any{"scores": []any{95}}
	encoded, err := Encode(suite.Scores, record, nil)
	suite.R.NoError(err)
	suite.R.Len(encoded, 2)

	decoded, err := Decode(suite.Scores, encoded, nil)
	suite.R.NoError(err)
	scores, _ := decoded.Get("scores")
	suite.R.Equal([]any{95}, scores)
}

func (suite *EndToEndTestSuite) TestMovesBitExact() {
	record := map[string]any{
		"moves": []any{"rock", "rock", "paper", "scissors", "rock"},
	}
	encoded, err := Encode(suite.Moves, record, suite.Bits)
	suite.R.NoError(err)
	suite.R.Len(encoded, 12)

	decoded, err := Decode(suite.Moves, encoded, suite.Bits)
	suite.R.NoError(err)
	moves, _ := decoded.Get("moves")
	suite.R.Equal([]any{"rock", "rock", "paper", "scissors", "rock"}, moves)
}

func (suite *EndToEndTestSuite) TestOptionalAbsenceCosts1Bit() {
	encoded, err := Encode(suite.Nickname, map[string]any{"nickname": nil}, suite.Bits)
	suite.R.NoError(err)
	suite.R.Equal("0", encoded)

	encoded, err = Encode(suite.Nickname, map[string]any{"nickname": true}, suite.Bits)
	suite.R.NoError(err)
	suite.R.Equal("11", encoded)
}

func makeList(depth int) map[string]any {
	node := map[string]any{"value": depth, "next": nil}
	for i := depth - 1; i > 0; i-- {
		node = map[string]any{"value": i, "next": node}
	}
	return node
}

func (suite *EndToEndTestSuite) TestLinkedListRoundTrip() {
	record := map[string]any{"node": makeList(10)}
	encoded, err := Encode(suite.List, record, nil)
	suite.R.NoError(err)

	decoded, err := Decode(suite.List, encoded, nil)
	suite.R.NoError(err)

	node, _ := decoded.Get("node")
	depth := 0
	for node != nil {
		record := node.(*orderedmap.OrderedMap)
		depth++
		value, _ := record.Get("value")
		suite.R.Equal(depth, value)
		node, _ = record.Get("next")
	}
	suite.R.Equal(10, depth)
}

func (suite *EndToEndTestSuite) TestTruncatedPayloadFails() {
	record := map[string]any{
		"rank":        1000,
		"active":      false,
		"temperature": -40.0,
		"mode":        "low",
	}
	encoded, err := Encode(suite.Telemetry, record, nil)
	suite.R.NoError(err)
	suite.R.Len(encoded, 4)

	_, err = Decode(suite.Telemetry, encoded[:len(encoded)-1], nil)
	suite.R.ErrorContains(err, "insufficient bits")
}

func (suite *EndToEndTestSuite) TestReencodeDecodedRecordIsStable() {
	record := map[string]any{
		"rank":        513,
		"active":      false,
		"temperature": 99.9,
		"mode":        "mid",
	}
	encoded, err := Encode(suite.Telemetry, record, nil)
	suite.R.NoError(err)

	decoded, err := Decode(suite.Telemetry, encoded, nil)
	suite.R.NoError(err)

	reencoded, err := Encode(suite.Telemetry, decoded, nil)
	suite.R.NoError(err)
	suite.R.Equal(encoded, reencoded)
}

func (suite *EndToEndTestSuite) TestMeasureAgreesWithEncodedBits() {
	record := map[string]any{
		"moves": []any{"paper", "paper", "scissors"},
	}
	measurement, err := dsize.Measure(suite.Moves, record)
	suite.R.NoError(err)

	encoded, err := Encode(suite.Moves, record, suite.Bits)
	suite.R.NoError(err)
	suite.R.Equal(measurement.TotalBits, len(encoded))
}

func TestEndToEndTestSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}
