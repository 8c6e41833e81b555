package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestNewCardCipher(t *testing.T) {
	_, err := NewCardCipher("")
	assert.Error(t, err)

	_, err = NewCardCipher("не hex")
	assert.Error(t, err)

	_, err = NewCardCipher("abcd") // 2 байта вместо 32
	assert.Error(t, err)

	c, err := NewCardCipher(testKeyHex)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestCardCipher_RoundTrip(t *testing.T) {
	c, err := NewCardCipher(testKeyHex)
	require.NoError(t, err)

	enc, err := c.Encrypt("4111111111111111")
	require.NoError(t, err)
	assert.NotEqual(t, "4111111111111111", enc)
	assert.False(t, strings.Contains(enc, "4111"), "номер не должен просматриваться в шифртексте")

	plain, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", plain)
}

func TestCardCipher_TamperedCiphertext(t *testing.T) {
	c, err := NewCardCipher(testKeyHex)
	require.NoError(t, err)

	enc, err := c.Encrypt("4111111111111111")
	require.NoError(t, err)

	tampered := enc[:len(enc)-2] + "00"
	if tampered == enc {
		tampered = enc[:len(enc)-2] + "01"
	}
	_, err = c.Decrypt(tampered)
	assert.Error(t, err)

	_, err = c.Decrypt("не hex")
	assert.Error(t, err)

	_, err = c.Decrypt("ab")
	assert.Error(t, err)
}

func TestCardCipher_NilPassthrough(t *testing.T) {
	var c *CardCipher

	enc, err := c.Encrypt("4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", enc)

	plain, err := c.Decrypt("4111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "4111111111111111", plain)
}
