package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Values below ColorCubeBase are the named colors below; values from
// ColorCubeBase upward are xterm 256-color codes produced by RGB.
type Color uint8

// Predefined colors for text and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ColorCubeBase is the first xterm code of the 6x6x6 color cube.
const ColorCubeBase Color = 17

// colorBlack is the darkest xterm grayscale entry. Code 16, the cube's own
// black, collides with ColorGray.
const colorBlack Color = 232

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

var namedRGB = map[Color][3]uint8{
	ColorDefault:       {0, 0, 0},
	ColorRed:           {205, 0, 0},
	ColorGreen:         {0, 205, 0},
	ColorYellow:        {205, 205, 0},
	ColorBlue:          {0, 0, 238},
	ColorMagenta:       {205, 0, 205},
	ColorCyan:          {0, 205, 205},
	ColorWhite:         {229, 229, 229},
	ColorBrightRed:     {255, 0, 0},
	ColorBrightGreen:   {0, 255, 0},
	ColorBrightYellow:  {255, 255, 0},
	ColorBrightBlue:    {92, 92, 255},
	ColorBrightMagenta: {255, 0, 255},
	ColorBrightCyan:    {0, 255, 255},
	ColorBrightWhite:   {255, 255, 255},
	ColorOrange:        {255, 135, 0},
	ColorGray:          {138, 138, 138},
}

func cubeIndex(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	default:
		return (int(v) - 35) / 40
	}
}

// RGB quantizes a 24-bit color to the nearest xterm cube entry.
func RGB(r, g, b uint8) Color {
	idx := 16 + 36*cubeIndex(r) + 6*cubeIndex(g) + cubeIndex(b)
	if idx == 16 {
		return colorBlack
	}
	return Color(idx)
}

// FromColor quantizes any image color, ignoring alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGB returns the approximate 24-bit value of the color.
func (c Color) RGB() (r, g, b uint8) {
	if v, ok := namedRGB[c]; ok {
		return v[0], v[1], v[2]
	}
	switch {
	case c >= 232:
		l := 8 + 10*uint8(c-232)
		return l, l, l
	case c >= ColorCubeBase:
		i := int(c) - 16
		return cubeLevels[i/36], cubeLevels[(i/6)%6], cubeLevels[i%6]
	}
	return 0, 0, 0
}
