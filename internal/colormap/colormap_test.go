package colormap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodash-org/geodash-backend-go/internal/stats"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{"default palette", DefaultNames, false},
		{"two colors", []string{"blue", "red"}, false},
		{"mixed case and spaces", []string{" Blue ", "RED"}, false},
		{"one color", []string{"red"}, true},
		{"empty", nil, true},
		{"unknown name", []string{"blue", "blurple"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.names)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.names), p.Size())
		})
	}
}

func mustBreaks(t *testing.T, values []float64) stats.QuantileBreaks {
	t.Helper()
	b, err := stats.Breaks(values)
	require.NoError(t, err)
	return b
}

func TestColorFor_Clamping(t *testing.T) {
	p := Default()
	breaks := mustBreaks(t, []float64{1, 2, 3, 4, 100})

	gray := RGB{128, 128, 128}
	red := RGB{255, 0, 0}

	assert.Equal(t, gray, p.ColorFor(1, breaks), "minimum maps to first color")
	assert.Equal(t, gray, p.ColorFor(-50, breaks), "below minimum clamps to first color")
	assert.Equal(t, red, p.ColorFor(100, breaks), "maximum maps to last color")
	assert.Equal(t, red, p.ColorFor(1000, breaks), "above maximum clamps to last color")
}

func TestColorFor_MidValue(t *testing.T) {
	p := Default()
	breaks := mustBreaks(t, []float64{1, 2, 3, 4, 100})

	// The median value sits halfway along the palette, between green and
	// yellow for the default six colors.
	c := p.ColorFor(3, breaks)
	green := RGB{0, 128, 0}
	yellow := RGB{255, 255, 0}
	assert.Equal(t, lerp(green, yellow, 0.5), c)
}

func TestColorFor_Monotonic(t *testing.T) {
	p := Default()
	breaks := mustBreaks(t, []float64{1, 2, 3, 4, 100})

	// The returned color must move monotonically along the palette gradient
	// as the value increases.
	prev := -1.0
	for _, v := range []float64{0, 1, 1.5, 2, 2.5, 3, 3.7, 4, 10, 50, 99, 100, 500} {
		pos := gradientPosition(p, p.ColorFor(v, breaks))
		assert.GreaterOrEqual(t, pos, prev, "palette position must not decrease at v=%v", v)
		prev = pos
	}
}

// gradientPosition locates a color's scalar position in [0,1] along the
// palette gradient by scanning for the nearest interpolated color.
func gradientPosition(p Palette, c RGB) float64 {
	best, bestDist := 0.0, math.MaxFloat64
	n := p.Size() - 1
	for s := 0.0; s <= 1.0; s += 0.0005 {
		scaled := s * float64(n)
		lower := int(math.Floor(scaled))
		upper := int(math.Ceil(scaled))
		var candidate RGB
		if lower == upper {
			candidate = p.colors[lower]
		} else {
			candidate = lerp(p.colors[lower], p.colors[upper], scaled-float64(lower))
		}
		dr := float64(candidate.R) - float64(c.R)
		dg := float64(candidate.G) - float64(c.G)
		db := float64(candidate.B) - float64(c.B)
		if dist := dr*dr + dg*dg + db*db; dist < bestDist {
			best, bestDist = s, dist
		}
	}
	return best
}

func TestColorFor_DegenerateDistribution(t *testing.T) {
	p := Default()
	breaks := mustBreaks(t, []float64{5, 5, 5, 5})

	// Every value maps to the middle palette color.
	middle := RGB{255, 255, 0} // yellow, index 3 of 6
	assert.Equal(t, middle, p.ColorFor(5, breaks))
	assert.Equal(t, middle, p.ColorFor(0, breaks))
	assert.Equal(t, middle, p.ColorFor(1e9, breaks))
}

func TestColorFor_Deterministic(t *testing.T) {
	p := Default()
	breaks := mustBreaks(t, []float64{1, 2, 3, 4, 100})

	a := p.ColorFor(2.5, breaks)
	b := p.ColorFor(2.5, breaks)
	assert.Equal(t, a, b)
}

func TestLerp(t *testing.T) {
	a := RGB{0, 0, 0}
	b := RGB{255, 255, 255}
	assert.Equal(t, a, lerp(a, b, 0))
	assert.Equal(t, b, lerp(a, b, 1))
	assert.Equal(t, RGB{128, 128, 128}, lerp(a, b, 0.5))
}
