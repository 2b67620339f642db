package dense

import (
	"densebit/dense/dalpha"
	"densebit/dense/dbits"
	"densebit/dense/dfield"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// Decode parses encoded over alphabet (nil selects Base64URL) and unpacks it
// against schema. A truncated or schema-mismatched payload surfaces as an
// insufficient-bits error from whichever field runs the buffer dry.
func Decode(schema Schema, encoded string, alphabet *dalpha.Alphabet) (*orderedmap.OrderedMap, error) {
	if alphabet == nil {
		alphabet = DefaultAlphabet
	}
	payload, capacityBits, err := alphabet.Parse(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "Decode error: parse payload")
	}
	reader := dbits.NewReader(payload, capacityBits)
	record := orderedmap.New()
	for _, field := range schema {
		value, err := dfield.DecodeField(reader, field, schema)
		if err != nil {
			return nil, errors.Wrapf(err, `Decode error: field "%s"`, field.Name)
		}
		record.Set(field.Name, value)
	}
	return record, nil
}
