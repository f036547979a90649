package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for _, s := range []string{"T", "TRUE", "true"} {
		b, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"F", "FALSE", "false"} {
		b, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}
	_, err := ParseBool("yes")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseInt(t *testing.T) {
	i, err := ParseInt("-42")
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i)

	_, err = ParseInt("4x")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = ParseInt("99999999999999999999")
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		1:     "1.0",
		-3:    "-3.0",
		0.25:  "0.25",
		1e21:  "1e+21",
		1e-7:  "1e-07",
		100.5: "100.5",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFloat(in))
	}
	assert.Equal(t, "NAN", FormatFloat(math.NaN()))
	assert.Equal(t, "INF", FormatFloat(math.Inf(1)))
	assert.Equal(t, "-INF", FormatFloat(math.Inf(-1)))
}

func TestParseFloat(t *testing.T) {
	f, err := ParseFloat("2.5e3")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, f)

	f, err = ParseFloat("NAN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(f))

	f, err = ParseFloat("-INF")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, -1))

	_, err = ParseFloat("1.2.3")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestFormatRoundTrip(t *testing.T) {
	for _, f := range []float64{0.1, 1.0 / 3, -7.25, 123456789.125} {
		back, err := ParseFloat(FormatFloat(f))
		require.NoError(t, err)
		assert.Equal(t, f, back)
	}
	for _, b := range []bool{true, false} {
		back, err := ParseBool(FormatBool(b))
		require.NoError(t, err)
		assert.Equal(t, b, back)
	}
}
