package effect

import "github.com/versepaper/versepaper/internal/paint"

// TraditionalColor is one named color from the traditional Chinese
// palette the backgrounds draw from.
type TraditionalColor struct {
	Name string
	Hex  string
}

// Color returns the parsed color value.
func (c TraditionalColor) Color() paint.RGBA {
	return paint.Hex(c.Hex)
}

// TraditionalColors is the built-in palette. The watermark renders the
// selected entry's name vertically along the canvas edge.
var TraditionalColors = []TraditionalColor{
	{Name: "胭脂", Hex: "#9D2933"},
	{Name: "妃色", Hex: "#ED5736"},
	{Name: "绯红", Hex: "#C3272B"},
	{Name: "藕荷", Hex: "#E4C6D0"},
	{Name: "缃色", Hex: "#F0C239"},
	{Name: "秋香", Hex: "#D9B611"},
	{Name: "葱倩", Hex: "#9ED048"},
	{Name: "青碧", Hex: "#48C0A3"},
	{Name: "竹青", Hex: "#789262"},
	{Name: "黛蓝", Hex: "#425066"},
	{Name: "藏青", Hex: "#2E4E7E"},
	{Name: "湖蓝", Hex: "#30DFF3"},
	{Name: "月白", Hex: "#D6ECF0"},
	{Name: "绀青", Hex: "#003371"},
	{Name: "乌金", Hex: "#A78E44"},
	{Name: "玄青", Hex: "#3D3B4F"},
}

// EntropySource supplies non-seeded entropy. It is invoked exactly once,
// at first run, to create the persisted seed and palette pick; renders
// themselves never consume it.
type EntropySource func() int64

// PickTraditional selects a palette entry by index, wrapping as needed.
func PickTraditional(index int64) TraditionalColor {
	n := int64(len(TraditionalColors))
	i := index % n
	if i < 0 {
		i += n
	}
	return TraditionalColors[i]
}

// FindTraditional returns the palette entry matching a hex value, or
// false if the background is a custom color.
func FindTraditional(hex string) (TraditionalColor, bool) {
	for _, c := range TraditionalColors {
		if c.Hex == hex {
			return c, true
		}
	}
	return TraditionalColor{}, false
}
