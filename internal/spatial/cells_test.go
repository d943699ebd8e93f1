package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidResolution(t *testing.T) {
	for r := MinResolution; r <= MaxResolution; r++ {
		assert.True(t, ValidResolution(r))
	}
	assert.False(t, ValidResolution(MinResolution-1))
	assert.False(t, ValidResolution(MaxResolution+1))
	assert.False(t, ValidResolution(0))
}

func TestCellToken_RoundTrip(t *testing.T) {
	// Lower Manhattan
	lat, lng := 40.7128, -74.0060

	for r := MinResolution; r <= MaxResolution; r++ {
		token := CellToken(lat, lng, r)
		require.NotEmpty(t, token)

		center, err := CellCenter(token)
		require.NoError(t, err)

		// The cell center stays near the input point; tolerance shrinks as
		// resolution grows.
		tolerance := 8.0 / float64(int(1)<<uint(r))
		assert.InDelta(t, lat, center.Lat, tolerance, "resolution %d", r)
		assert.InDelta(t, lng, center.Lng, tolerance, "resolution %d", r)
	}
}

func TestCellToken_Deterministic(t *testing.T) {
	a := CellToken(40.7128, -74.0060, 8)
	b := CellToken(40.7128, -74.0060, 8)
	assert.Equal(t, a, b)
}

func TestCellToken_CoarserResolutionContains(t *testing.T) {
	// Two nearby points share a coarse cell but may differ at fine ones.
	a := CellToken(40.71280, -74.00600, MinResolution)
	b := CellToken(40.71281, -74.00601, MinResolution)
	assert.Equal(t, a, b)
}

func TestCellCenter_Invalid(t *testing.T) {
	_, err := CellCenter("not-a-token")
	assert.Error(t, err)
}

func TestMeanCenter(t *testing.T) {
	tokens := []string{
		CellToken(40.0, -74.0, 8),
		CellToken(41.0, -73.0, 8),
	}
	center, ok := MeanCenter(tokens)
	require.True(t, ok)
	assert.InDelta(t, 40.5, center.Lat, 0.1)
	assert.InDelta(t, -73.5, center.Lng, 0.1)

	_, ok = MeanCenter(nil)
	assert.False(t, ok)

	// Invalid tokens are skipped, not fatal.
	center, ok = MeanCenter([]string{"junk", CellToken(40.0, -74.0, 8)})
	require.True(t, ok)
	assert.InDelta(t, 40.0, center.Lat, 0.1)
}
