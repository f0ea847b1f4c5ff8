package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// curve maps t in [0, 1] to a color. Components outside [0, 1] are clamped
// when the table is built.
type curve func(t float64) colorful.Color

func buildTable(c curve) []color.RGBA {
	table := make([]color.RGBA, 256)
	for i := range table {
		r, g, b := c(float64(i) / 255).Clamped().RGB255()
		table[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return table
}

// stop is a control point of a single channel.
type stop struct{ x, v float64 }

// linear interpolates between stops sorted by x. Values before the first or
// after the last stop hold the end value.
func linear(stops ...stop) func(float64) float64 {
	return func(t float64) float64 {
		if t <= stops[0].x {
			return stops[0].v
		}
		for i := 1; i < len(stops); i++ {
			hi := stops[i]
			if t <= hi.x {
				lo := stops[i-1]
				span := hi.x - lo.x
				if span <= 0 {
					return hi.v
				}
				return lo.v + (hi.v-lo.v)*(t-lo.x)/span
			}
		}
		return stops[len(stops)-1].v
	}
}

func channels(r, g, b func(float64) float64) curve {
	return func(t float64) colorful.Color {
		return colorful.Color{R: r(t), G: g(t), B: b(t)}
	}
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

func identity(t float64) float64 { return t }

// keyframes blends evenly spaced colors in RGB.
func keyframes(hexes ...string) curve {
	cols := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("palette: bad keyframe " + h)
		}
		cols[i] = c
	}
	last := len(cols) - 1
	return func(t float64) colorful.Color {
		if t <= 0 {
			return cols[0]
		}
		if t >= 1 {
			return cols[last]
		}
		pos := t * float64(last)
		i := int(pos)
		return cols[i].BlendRgb(cols[i+1], pos-float64(i))
	}
}

var grayCurve = channels(identity, identity, identity)

var autumnCurve = channels(constant(1), identity, constant(0))

var boneCurve = channels(
	linear(stop{0, 0}, stop{0.746032, 0.652778}, stop{1, 1}),
	linear(stop{0, 0}, stop{0.365079, 0.319444}, stop{0.746032, 0.777778}, stop{1, 1}),
	linear(stop{0, 0}, stop{0.365079, 0.444444}, stop{1, 1}),
)

var jetCurve = channels(
	linear(stop{0, 0}, stop{0.35, 0}, stop{0.66, 1}, stop{0.89, 1}, stop{1, 0.5}),
	linear(stop{0, 0}, stop{0.125, 0}, stop{0.375, 1}, stop{0.64, 1}, stop{0.91, 0}, stop{1, 0}),
	linear(stop{0, 0.5}, stop{0.11, 1}, stop{0.34, 1}, stop{0.65, 0}, stop{1, 0}),
)

var winterCurve = channels(constant(0), identity, linear(stop{0, 1}, stop{1, 0.5}))

var (
	hotRed   = linear(stop{0, 0.0416}, stop{0.365079, 1}, stop{1, 1})
	hotGreen = linear(stop{0, 0}, stop{0.365079, 0}, stop{0.746032, 1}, stop{1, 1})
	hotBlue  = linear(stop{0, 0}, stop{0.746032, 0}, stop{1, 1})
	hotCurve = channels(hotRed, hotGreen, hotBlue)
)

// hsvCurve sweeps the full hue circle, ending where it started.
var hsvCurve = func(t float64) colorful.Color {
	return colorful.Hsv(math.Mod(360*t, 360), 1, 1)
}

// pinkCurve tints a gray ramp with hot: sqrt((2*gray + hot) / 3).
var pinkCurve = channels(
	func(t float64) float64 { return math.Sqrt((2*t + hotRed(t)) / 3) },
	func(t float64) float64 { return math.Sqrt((2*t + hotGreen(t)) / 3) },
	func(t float64) float64 { return math.Sqrt((2*t + hotBlue(t)) / 3) },
)

var oceanCurve = channels(
	linear(stop{0, 0}, stop{2.0 / 3, 0}, stop{1, 1}),
	linear(stop{0, 0.5}, stop{1.0 / 3, 0}, stop{1, 1}),
	identity,
)

// rainbowCurve runs red to violet.
var rainbowCurve = func(t float64) colorful.Color {
	return colorful.Hsv(270*t, 1, 1)
}

var springCurve = channels(constant(1), identity, func(t float64) float64 { return 1 - t })

var summerCurve = channels(identity, func(t float64) float64 { return 0.5 + t/2 }, constant(0.4))

var coolCurve = channels(identity, func(t float64) float64 { return 1 - t }, constant(1))

var cividisCurve = keyframes("#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838")

// twilightCurve is cyclic: both ends are the same light gray.
var twilightCurve = keyframes("#e2d9e2", "#9eb9c9", "#6a89c0", "#5e56b0", "#3f2164", "#2f1436", "#5b1a48", "#8e3057", "#b55b5a", "#cc9583", "#e2d9e2")

var twilightShiftedCurve = func(t float64) colorful.Color {
	return twilightCurve(math.Mod(t+0.5, 1))
}

// turboCurve is the polynomial fit of Google's Turbo map.
var turboCurve = func(t float64) colorful.Color {
	r := 0.13572138 + t*(4.61539260+t*(-42.66032258+t*(132.13108234+t*(-152.94239396+t*59.28637943))))
	g := 0.09140261 + t*(2.19418839+t*(4.84296658+t*(-14.18503333+t*(4.27729857+t*2.82956604))))
	b := 0.10667330 + t*(12.64194608+t*(-60.58204836+t*(110.36276771+t*(-89.90310912+t*27.34824973))))
	return colorful.Color{R: r, G: g, B: b}
}
