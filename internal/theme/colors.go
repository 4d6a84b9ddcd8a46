package theme

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HexToColor converts a hex color string (#RRGGBB or #RGB) to tcell.Color
func HexToColor(hexColor string) tcell.Color {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) == 3 {
		hexColor = strings.Repeat(hexColor[0:1], 2) + strings.Repeat(hexColor[1:2], 2) + strings.Repeat(hexColor[2:3], 2)
	}
	if len(hexColor) != 6 {
		return tcell.ColorDefault
	}

	c, err := colorful.Hex("#" + hexColor)
	if err != nil {
		return tcell.ColorDefault
	}
	return colorfulToTcell(c)
}

func colorfulToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ParseColorString handles #RRGGBB, #RGB, rgb(r,g,b) and the color names
// tcell knows about
func ParseColorString(colorStr string) tcell.Color {
	colorStr = strings.TrimSpace(colorStr)

	switch {
	case strings.HasPrefix(colorStr, "#"):
		return HexToColor(colorStr)
	case strings.HasPrefix(colorStr, "rgb(") && strings.HasSuffix(colorStr, ")"):
		parts := strings.Split(colorStr[len("rgb("):len(colorStr)-1], ",")
		if len(parts) != 3 {
			return tcell.ColorDefault
		}
		var rgb [3]int32
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return tcell.ColorDefault
			}
			rgb[i] = int32(v)
		}
		return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2])
	default:
		return tcell.GetColor(strings.ToLower(colorStr))
	}
}

// Blend mixes two colors in Lab space, t=0 giving a and t=1 giving b
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if !a.Valid() || !b.Valid() {
		return a
	}
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	if ar < 0 || br < 0 {
		return a
	}
	ca := colorful.Color{R: float64(ar) / 255, G: float64(ag) / 255, B: float64(ab) / 255}
	cb := colorful.Color{R: float64(br) / 255, G: float64(bg) / 255, B: float64(bb) / 255}
	return colorfulToTcell(ca.BlendLab(cb, min(max(t, 0), 1)))
}

// ColorToStyle creates a style with a specific foreground color
func ColorToStyle(fgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor)
}

// ColorPairToStyle creates a style with specific foreground and background colors
func ColorPairToStyle(fgColor, bgColor tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fgColor).Background(bgColor)
}
