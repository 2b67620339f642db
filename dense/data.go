// Package dense stores the public entry points of the dense-schema codec:
// one call to pack a record against a schema into a string over a chosen
// alphabet, and one call to unpack it. The payload carries no framing and no
// self-description; both sides must hold the identical schema.
package dense

import (
	"densebit/dense/dalpha"
	"densebit/dense/dfield"
)

type (
	Schema = dfield.Schema
	Field  = dfield.Field
)

// DefaultAlphabet is the alphabet used when callers pass nil.
var DefaultAlphabet = dalpha.Base64URL
