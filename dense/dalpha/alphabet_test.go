package dalpha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Errors(t *testing.T) {
	_, err := New("a")
	assert.ErrorIs(t, err, TooFewSymbolsError{Symbols: "a"})

	_, err = New("abca")
	assert.ErrorIs(t, err, DuplicateSymbolError{Symbol: 'a'})
}

func TestByName(t *testing.T) {
	alphabet, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, Base64URL, alphabet)

	alphabet, err = ByName(NameBase45QR)
	require.NoError(t, err)
	assert.Equal(t, 38, alphabet.Size())

	alphabet, err = ByName("01")
	require.NoError(t, err)
	assert.Equal(t, 2, alphabet.Size())
}

func TestBuiltinSizes(t *testing.T) {
	assert.Equal(t, 64, Base64URL.Size())
	assert.Equal(t, 38, Base45QR.Size())
}

func TestSymbolCount(t *testing.T) {
	// 6 bits per base64url symbol
	assert.Equal(t, 4, Base64URL.SymbolCount(24))
	assert.Equal(t, 2, Base64URL.SymbolCount(12))
	assert.Equal(t, 1, Base64URL.SymbolCount(1))
	assert.Equal(t, 0, Base64URL.SymbolCount(0))

	// ceil(24 / log2(38)) = ceil(4.57)
	assert.Equal(t, 5, Base45QR.SymbolCount(24))

	bits := MustNew("01")
	assert.Equal(t, 17, bits.SymbolCount(17))
}

func TestBitCapacity(t *testing.T) {
	assert.Equal(t, 24, Base64URL.BitCapacity(4))
	assert.Equal(t, 0, Base64URL.BitCapacity(0))

	// floor(5 * log2(38)) = floor(26.23)
	assert.Equal(t, 26, Base45QR.BitCapacity(5))

	bits := MustNew("01")
	assert.Equal(t, 17, bits.BitCapacity(17))
}
