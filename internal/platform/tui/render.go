package tui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/render"
)

const (
	runeSolid = '█'
	runeShade = '░'
)

// colorStyles maps named core colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(c))))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// Canvas draws window-pixel primitives into a character Screen. Each cell
// covers a fixed pixel footprint derived from the window and screen sizes.
type Canvas struct {
	screen  *core.Screen
	windowW float64
	windowH float64
	blend   render.Blend
}

// NewCanvas creates a canvas mapping a windowW x windowH pixel space onto screen.
func NewCanvas(screen *core.Screen, windowW, windowH int) *Canvas {
	return &Canvas{
		screen:  screen,
		windowW: float64(windowW),
		windowH: float64(windowH),
	}
}

// Screen returns the buffer the canvas draws into.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

func (c *Canvas) scale() (sx, sy float64) {
	return c.windowW / float64(max(c.screen.Width(), 1)), c.windowH / float64(max(c.screen.Height(), 1))
}

// ToPixel returns the window pixel at the center of a screen cell.
func (c *Canvas) ToPixel(col, row int) core.Point {
	sx, sy := c.scale()
	return core.Pt((float64(col)+0.5)*sx, (float64(row)+0.5)*sy)
}

// ToCell returns the screen cell containing a window pixel.
func (c *Canvas) ToCell(x, y float64) (col, row int) {
	sx, sy := c.scale()
	return int(math.Floor(x / sx)), int(math.Floor(y / sy))
}

// Clear blanks the screen and restores the alpha blend.
func (c *Canvas) Clear() {
	c.screen.Clear()
	c.blend = render.BlendAlpha
}

func (c *Canvas) SetBlend(b render.Blend) {
	c.blend = b
}

// FillRect covers every cell the region touches. Regions smaller than a cell
// still occupy one cell. Translucent fills are drawn as a light shade.
func (c *Canvas) FillRect(r core.Region, col color.Color) {
	_, _, _, a := col.RGBA()
	if a == 0 {
		return
	}
	sx, sy := c.scale()
	x0, y0 := int(math.Floor(r.X1/sx)), int(math.Floor(r.Y1/sy))
	x1, y1 := max(int(math.Ceil(r.X2/sx)), x0+1), max(int(math.Ceil(r.Y2/sy)), y0+1)

	fill := runeSolid
	if a < 0x8000 {
		fill = runeShade
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.plot(x, y, fill, col)
		}
	}
}

// DrawImage scales img to its cell footprint and plots every cell that is
// at least half opaque.
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	sx, sy := c.scale()
	b := img.Bounds()
	w := max(int(math.Ceil(float64(b.Dx())/sx)), 1)
	h := max(int(math.Ceil(float64(b.Dy())/sy)), 1)

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, b, draw.Over, nil)

	col0, row0 := c.ToCell(x, y)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			px := small.RGBAAt(i, j)
			if px.A < 0x80 {
				continue
			}
			c.plot(col0+i, row0+j, runeSolid, px)
		}
	}
}

func (c *Canvas) DrawText(s string, x, y float64, col color.Color) {
	cx, cy := c.ToCell(x, y)
	c.screen.DrawTextColored(cx, cy, s, core.FromColor(col))
}

func (c *Canvas) plot(x, y int, r rune, col color.Color) {
	if c.blend == render.BlendAdditive {
		col = c.addTo(x, y, col)
	}
	c.screen.SetColored(x, y, r, core.FromColor(col))
}

// addTo returns col added onto the color already in the cell.
func (c *Canvas) addTo(x, y int, col color.Color) color.Color {
	cell := c.screen.GetCell(x, y)
	if cell.Rune == ' ' {
		return col
	}
	dr, dg, db := cell.Color.RGB()
	sr, sg, sb, _ := col.RGBA()
	return color.RGBA{
		R: uint8(min(int(dr)+int(sr>>8), 255)),
		G: uint8(min(int(dg)+int(sg>>8), 255)),
		B: uint8(min(int(db)+int(sb>>8), 255)),
		A: 255,
	}
}
