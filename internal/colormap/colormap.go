package colormap

import (
	"fmt"
	"math"
	"strings"

	"github.com/geodash-org/geodash-backend-go/internal/stats"
)

// RGB is a color triple with each channel in [0, 255].
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// namedColors maps the color names accepted in palette configuration to
// their RGB values (CSS color definitions).
var namedColors = map[string]RGB{
	"black":  {0, 0, 0},
	"gray":   {128, 128, 128},
	"silver": {192, 192, 192},
	"white":  {255, 255, 255},
	"blue":   {0, 0, 255},
	"navy":   {0, 0, 128},
	"cyan":   {0, 255, 255},
	"green":  {0, 128, 0},
	"lime":   {0, 255, 0},
	"yellow": {255, 255, 0},
	"orange": {255, 165, 0},
	"red":    {255, 0, 0},
	"purple": {128, 0, 128},
}

// Palette is an ordered sequence of colors a scalar metric is mapped onto.
// A valid palette has at least two colors.
type Palette struct {
	names  []string
	colors []RGB
}

// DefaultNames is the palette the dashboard ships with, from cold to hot.
var DefaultNames = []string{"gray", "blue", "green", "yellow", "orange", "red"}

// New builds a palette from ordered color names.
func New(names []string) (Palette, error) {
	if len(names) < 2 {
		return Palette{}, fmt.Errorf("colormap: palette needs at least 2 colors, got %d", len(names))
	}
	p := Palette{names: names, colors: make([]RGB, len(names))}
	for i, name := range names {
		c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return Palette{}, fmt.Errorf("colormap: unknown color name %q", name)
		}
		p.colors[i] = c
	}
	return p, nil
}

// Default returns the built-in cold-to-hot palette.
func Default() Palette {
	p, err := New(DefaultNames)
	if err != nil {
		panic(err) // DefaultNames are all registered
	}
	return p
}

// Names returns the configured color names in order.
func (p Palette) Names() []string { return p.names }

// Size returns the number of colors in the palette.
func (p Palette) Size() int { return len(p.colors) }

// ColorFor maps a value onto the palette using the quantile breaks as scale
// anchors. The mapping is piecewise linear: the five breaks are spread evenly
// across the palette and the value is interpolated between the two adjacent
// colors of the segment it falls in. Values below the lowest break clamp to
// the first color, values above the highest break clamp to the last. When all
// breaks are equal every value maps to the middle color.
func (p Palette) ColorFor(value float64, breaks stats.QuantileBreaks) RGB {
	if p.Size() < 2 {
		return RGB{}
	}
	if breaks.Degenerate() {
		return p.colors[p.Size()/2]
	}
	if value <= breaks.Min() {
		return p.colors[0]
	}
	if value >= breaks.Max() {
		return p.colors[p.Size()-1]
	}

	// Position in [0,1] along the break sequence.
	pos := 0.0
	for i := 0; i < 4; i++ {
		lo, hi := breaks[i], breaks[i+1]
		if value > hi {
			continue
		}
		seg := 0.0
		if hi > lo {
			seg = (value - lo) / (hi - lo)
		}
		pos = (float64(i) + seg) / 4
		break
	}

	// Interpolate between the two palette colors around that position.
	scaled := pos * float64(p.Size()-1)
	lower := int(math.Floor(scaled))
	upper := int(math.Ceil(scaled))
	if lower == upper {
		return p.colors[lower]
	}
	t := scaled - float64(lower)
	return lerp(p.colors[lower], p.colors[upper], t)
}

func lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: uint8(math.Round(float64(a.R) + (float64(b.R)-float64(a.R))*t)),
		G: uint8(math.Round(float64(a.G) + (float64(b.G)-float64(a.G))*t)),
		B: uint8(math.Round(float64(a.B) + (float64(b.B)-float64(a.B))*t)),
	}
}
