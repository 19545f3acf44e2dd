package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// upperHalfBlock draws the upper pixel in the foreground colour and the lower
// pixel in the background colour, giving two square-ish pixels per cell
const upperHalfBlock = "▀"

// RenderImage draws img with half-block characters so that it fits inside
// cols x rows terminal cells. Aspect ratio is kept and images are never
// scaled up.
func RenderImage(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	fitted := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := fitted.Bounds()

	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			out.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(fitted.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(fitted.At(x, y+1)))
			}
			out.WriteString(style.Render(upperHalfBlock))
		}
	}
	return out.String()
}

func hexColor(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}
