package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSompiToHTN_WholeAmount(t *testing.T) {
	assert.Equal(t, "1.00000000", SompiToHTN(100_000_000))
}

func TestSompiToHTN_SubHTN(t *testing.T) {
	assert.Equal(t, "0.00001000", SompiToHTN(1000))
	assert.Equal(t, "0.00000001", SompiToHTN(1))
	assert.Equal(t, "0.00000000", SompiToHTN(0))
}

func TestSompiToHTN_MixedAmount(t *testing.T) {
	assert.Equal(t, "12.34567890", SompiToHTN(1_234_567_890))
}

func TestHTNToSompi_WholeAmount(t *testing.T) {
	n, err := HTNToSompi("5")
	require.NoError(t, err)
	assert.Equal(t, uint64(500_000_000), n)
}

func TestHTNToSompi_Fractional(t *testing.T) {
	n, err := HTNToSompi("1.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(150_000_000), n)
}

func TestHTNToSompi_FullPrecision(t *testing.T) {
	n, err := HTNToSompi("0.00000001")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestHTNToSompi_TruncatesExtraDecimals(t *testing.T) {
	n, err := HTNToSompi("1.123456789")
	require.NoError(t, err)
	assert.Equal(t, uint64(112_345_678), n)
}

func TestHTNToSompi_RejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "abc", "1.2.3", "-1", "1,5"} {
		_, err := HTNToSompi(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestHTNToSompi_RoundTrip(t *testing.T) {
	for _, sompi := range []uint64{0, 1, 999, 1000, 100_000_000, 123_456_789_012} {
		n, err := HTNToSompi(SompiToHTN(sompi))
		require.NoError(t, err)
		assert.Equal(t, sompi, n)
	}
}

func TestCompareHTNAmounts(t *testing.T) {
	cmp, err := CompareHTNAmounts("1.5", "1.50000000")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareHTNAmounts("0.1", "0.2")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareHTNAmounts("2", "1.99999999")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)
}
