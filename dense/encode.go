package dense

import (
	"densebit/dense/dalpha"
	"densebit/dense/dbits"
	"densebit/dense/dfield"
	"github.com/pkg/errors"
)

// Encode packs record against schema and renders the accumulated bits over
// alphabet (nil selects Base64URL). The record may be an orderedmap, a plain
// map, or a dfield.Record.
func Encode(schema Schema, record any, alphabet *dalpha.Alphabet) (string, error) {
	if alphabet == nil {
		alphabet = DefaultAlphabet
	}
	recordView, ok := dfield.AsRecord(record)
	if !ok {
		return "", dfield.NotARecordError{
			FieldName: "(schema root)",
			Value:     record,
		}
	}
	writer := dbits.NewWriter()
	for _, field := range schema {
		value, _ := recordView.Get(field.Name)
		if err := dfield.EncodeField(writer, field, value, schema); err != nil {
			return "", errors.Wrapf(err, `Encode error: field "%s"`, field.Name)
		}
	}
	// The reader counts down from the parsed string's bit capacity, so the
	// stream must be left-aligned to it: pad with trailing zero bits up to
	// what the rendered symbols can carry. Decode walks the same field order
	// and stops before ever touching the padding.
	symbolCount := alphabet.SymbolCount(writer.BitCount())
	writer.WriteUInt(0, alphabet.BitCapacity(symbolCount)-writer.BitCount())
	return alphabet.Render(writer.BigInt(), writer.BitCount()), nil
}
