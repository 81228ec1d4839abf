package hoosat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWIF_RoundTripMainnet(t *testing.T) {
	privateKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	wif, err := EncodeWIF(privateKey, NetworkMainnet, true)
	require.NoError(t, err)

	decoded, network, compressed, err := DecodeWIF(wif)
	require.NoError(t, err)
	assert.Equal(t, privateKey, decoded)
	assert.Equal(t, NetworkMainnet, network)
	assert.True(t, compressed)
}

func TestWIF_RoundTripTestnetUncompressed(t *testing.T) {
	privateKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	wif, err := EncodeWIF(privateKey, NetworkTestnet, false)
	require.NoError(t, err)

	decoded, network, compressed, err := DecodeWIF(wif)
	require.NoError(t, err)
	assert.Equal(t, privateKey, decoded)
	assert.Equal(t, NetworkTestnet, network)
	assert.False(t, compressed)
}

func TestEncodeWIF_RejectsBadKeyLength(t *testing.T) {
	_, err := EncodeWIF([]byte{1, 2, 3}, NetworkMainnet, true)
	assert.Error(t, err)
}

func TestEncodeWIF_RejectsBadNetwork(t *testing.T) {
	privateKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = EncodeWIF(privateKey, "regtest", true)
	assert.Error(t, err)
}

func TestDecodeWIF_RejectsGarbage(t *testing.T) {
	_, _, _, err := DecodeWIF("not-a-wif")
	assert.Error(t, err)
}

func TestDecodeWIF_RejectsTamperedChecksum(t *testing.T) {
	privateKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	wif, err := EncodeWIF(privateKey, NetworkMainnet, true)
	require.NoError(t, err)

	tampered := []byte(wif)
	if tampered[len(tampered)-1] == 'x' {
		tampered[len(tampered)-1] = 'y'
	} else {
		tampered[len(tampered)-1] = 'x'
	}
	_, _, _, err = DecodeWIF(string(tampered))
	assert.Error(t, err)
}

func TestParsePrivateKeyHex(t *testing.T) {
	parsed, err := ParsePrivateKeyHex("33a4a81ecd31615c51385299969121707897fb1b1b1b5110781d8b4d12345678")
	require.NoError(t, err)
	assert.Len(t, parsed, PrivateKeyLen)

	_, err = ParsePrivateKeyHex("zz")
	assert.Error(t, err)

	_, err = ParsePrivateKeyHex("abcd")
	assert.Error(t, err)
}
