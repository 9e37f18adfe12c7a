package viz

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid of Width x Height cells, addressed in dots
// (2*Width x 4*Height).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
}

// DotsX and DotsY are the canvas size in dots.
func (c *Canvas) DotsX() int { return c.Width * 2 }
func (c *Canvas) DotsY() int { return c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, mask rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

func (c *Canvas) Set(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= mask
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, mask, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= mask
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, mask, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&mask != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// FillEllipse lights every dot whose center lies inside the axis aligned
// ellipse at (cx, cy) with radii rx and ry, all in dots.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64) {
	if !(rx > 0) || !(ry > 0) {
		return
	}
	y0 := int(math.Max(0, math.Floor(cy-ry)))
	y1 := int(math.Min(float64(c.DotsY()-1), math.Ceil(cy+ry)))
	x0 := int(math.Max(0, math.Floor(cx-rx)))
	x1 := int(math.Min(float64(c.DotsX()-1), math.Ceil(cx+rx)))
	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.Set(x, y)
			}
		}
	}
}

// Ring lights n evenly spaced dots on the ellipse outline.
func (c *Canvas) Ring(cx, cy, rx, ry float64, n int) {
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c.Set(int(cx+rx*math.Cos(a)), int(cy+ry*math.Sin(a)))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
