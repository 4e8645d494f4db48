package floret

// Palette identifies one of the built-in perceptually-ordered colormaps.
// The set is closed: dispatch is by tag, not by string, so an unknown
// palette cannot appear past parsing.
type Palette int

const (
	// PaletteViridis is the default palette.
	PaletteViridis Palette = iota
	// PaletteTurbo is Google's turbo rainbow colormap.
	PaletteTurbo
	// PalettePlasma is the matplotlib plasma colormap.
	PalettePlasma
	// PaletteInferno is the matplotlib inferno colormap.
	PaletteInferno
	// PaletteMagma is the matplotlib magma colormap.
	PaletteMagma
	// PaletteCustom interpolates between two caller-supplied colors.
	PaletteCustom
)

// String returns the canonical palette name.
func (p Palette) String() string {
	switch p {
	case PaletteViridis:
		return "viridis"
	case PaletteTurbo:
		return "turbo"
	case PalettePlasma:
		return "plasma"
	case PaletteInferno:
		return "inferno"
	case PaletteMagma:
		return "magma"
	case PaletteCustom:
		return "custom"
	}
	return "viridis"
}

// ParsePalette maps a palette name to its tag. Unrecognized names fall back
// to the default palette with ok=false; a cosmetic parameter must never
// hard-fail a visual application.
func ParsePalette(name string) (p Palette, ok bool) {
	switch name {
	case "viridis", "":
		return PaletteViridis, true
	case "turbo":
		return PaletteTurbo, true
	case "plasma":
		return PalettePlasma, true
	case "inferno":
		return PaletteInferno, true
	case "magma":
		return PaletteMagma, true
	case "custom":
		return PaletteCustom, true
	}
	return PaletteViridis, false
}

// ColorStop represents a color at a specific position in a colormap.
type ColorStop struct {
	Offset float64 // Position in the map, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// Anchor tables for the built-in colormaps. Stops are sampled from the
// published colormaps at evenly spaced offsets; intermediate colors are
// linearly interpolated.
var (
	viridisStops = []ColorStop{
		{0.000, Hex("440154")},
		{0.125, Hex("472d7b")},
		{0.250, Hex("3b528b")},
		{0.375, Hex("2c728e")},
		{0.500, Hex("21918c")},
		{0.625, Hex("27ad81")},
		{0.750, Hex("5ec962")},
		{0.875, Hex("aadc32")},
		{1.000, Hex("fde725")},
	}
	turboStops = []ColorStop{
		{0.000, Hex("30123b")},
		{0.125, Hex("466be3")},
		{0.250, Hex("28bceb")},
		{0.375, Hex("31f199")},
		{0.500, Hex("a2fc3c")},
		{0.625, Hex("edd03a")},
		{0.750, Hex("fb8022")},
		{0.875, Hex("d23105")},
		{1.000, Hex("7a0403")},
	}
	plasmaStops = []ColorStop{
		{0.000, Hex("0d0887")},
		{0.200, Hex("6a00a8")},
		{0.400, Hex("b12a90")},
		{0.600, Hex("e16462")},
		{0.800, Hex("fca636")},
		{1.000, Hex("f0f921")},
	}
	infernoStops = []ColorStop{
		{0.000, Hex("000004")},
		{0.200, Hex("420a68")},
		{0.400, Hex("932667")},
		{0.600, Hex("dd513a")},
		{0.800, Hex("fca50a")},
		{1.000, Hex("fcffa4")},
	}
	magmaStops = []ColorStop{
		{0.000, Hex("000004")},
		{0.200, Hex("3b0f70")},
		{0.400, Hex("8c2981")},
		{0.600, Hex("de4968")},
		{0.800, Hex("fe9f6d")},
		{1.000, Hex("fcfdbf")},
	}
)

func (p Palette) stops() []ColorStop {
	switch p {
	case PaletteTurbo:
		return turboStops
	case PalettePlasma:
		return plasmaStops
	case PaletteInferno:
		return infernoStops
	case PaletteMagma:
		return magmaStops
	default:
		return viridisStops
	}
}

// colorAtOffset returns the interpolated color at offset t in [0, 1].
// Stops must be sorted by offset, which the built-in tables are.
func colorAtOffset(stops []ColorStop, t float64) RGBA {
	t = clamp01(t)
	if len(stops) == 0 {
		return RGBA{A: 1}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			lo, hi := stops[i-1], stops[i]
			span := hi.Offset - lo.Offset
			if span <= 0 {
				return hi.Color
			}
			return lerpRGBA(lo.Color, hi.Color, (t-lo.Offset)/span)
		}
	}
	return last.Color
}

// Colors returns exactly n colors sampled evenly from the palette.
// PaletteCustom is not valid here; use CustomColors. Colors is a pure
// function of its inputs: identical calls return equal slices.
//
// invert reverses the final sequence order.
func Colors(p Palette, n int, invert bool) []RGBA {
	if n <= 0 {
		return nil
	}
	return sampleStops(p.stops(), n, invert)
}

// CustomColors returns exactly n colors linearly interpolated from start
// to end.
func CustomColors(start, end RGBA, n int, invert bool) []RGBA {
	if n <= 0 {
		return nil
	}
	stops := []ColorStop{{0, start}, {1, end}}
	return sampleStops(stops, n, invert)
}

func sampleStops(stops []ColorStop, n int, invert bool) []RGBA {
	out := make([]RGBA, n)
	if n == 1 {
		out[0] = colorAtOffset(stops, 0)
	} else {
		step := 1 / float64(n-1)
		for i := range out {
			out[i] = colorAtOffset(stops, float64(i)*step)
		}
	}
	if invert {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
