package shortlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnownValues(t *testing.T) {
	assert.Equal(t, "0", Encode(0))
	assert.Equal(t, "1", Encode(1))
	assert.Equal(t, "z", Encode(35))
	assert.Equal(t, "A", Encode(36))
	assert.Equal(t, "Z", Encode(61))
	assert.Equal(t, "10", Encode(62))
	assert.Equal(t, "100", Encode(62*62))
}

func TestRoundTrip(t *testing.T) {
	for n := uint64(0); n <= 10_000; n++ {
		decoded, err := Decode(Encode(n))
		require.NoError(t, err)
		require.Equal(t, n, decoded)
	}

	for _, n := range []uint64{1 << 20, 1 << 32, 1<<63 - 1} {
		decoded, err := Decode(Encode(n))
		require.NoError(t, err)
		assert.Equal(t, n, decoded)
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"", "abc!", "r-1", "with space", "абв"} {
		_, err := Decode(input)
		assert.ErrorIs(t, err, ErrInvalidShortCode, "input %q", input)
	}
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "1A", StripPrefix("r-1A"))
	assert.Equal(t, "1A", StripPrefix("1A"))
	assert.Equal(t, "", StripPrefix("r-"))
}
