/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders layouts to static artifacts: PNG snapshots and PDF
// sheets. Rendering is schematic, the same boxes the designer shows, at
// canvas resolution.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"screendesigner/internal/domain"
)

// PNGOptions controls PNG export behavior.
// - Scale: output pixels per canvas unit; <= 0 means 1:1 (1920x1080).
// - DrawLabels: print "<type> WxH" inside each widget.
type PNGOptions struct {
	Scale      float64
	DrawLabels bool
}

// typeFills assigns each palette type a fixed fill so exports match the
// canvas colors.
var typeFills = map[string]color.RGBA{
	"A": {R: 0x4c, G: 0x8b, B: 0xf5, A: 0xff},
	"B": {R: 0x60, G: 0xb2, B: 0x6a, A: 0xff},
	"C": {R: 0xe8, G: 0xa3, B: 0x3d, A: 0xff},
	"D": {R: 0xc9, G: 0x5d, B: 0x63, A: 0xff},
}

var defaultFill = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}

// RenderPNG renders one layout into an RGBA image.
func RenderPNG(l domain.Layout, opt PNGOptions) *image.RGBA {
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	pixW := int(math.Round(domain.CanvasWidth * scale))
	pixH := int(math.Round(domain.CanvasHeight * scale))

	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	border := color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	strokeRect(img, 0, 0, pixW-1, pixH-1, border)

	for _, w := range l.Widgets {
		x := int(math.Round(w.X * scale))
		y := int(math.Round(w.Y * scale))
		ww := int(math.Round(w.Width * scale))
		wh := int(math.Round(w.Height * scale))
		fill, ok := typeFills[w.Type]
		if !ok {
			fill = defaultFill
		}
		fillRect(img, x, y, x+ww-1, y+wh-1, fill)
		strokeRect(img, x, y, x+ww-1, y+wh-1, border)
		if opt.DrawLabels {
			label := fmt.Sprintf("%s %dx%d", w.Type, int(w.Width), int(w.Height))
			drawLabel(img, x+4, y+14, label)
		}
	}
	return img
}

// ExportPNG writes the layout as a PNG file at outPath.
func ExportPNG(l domain.Layout, outPath string, opt PNGOptions) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	img := RenderPNG(l, opt)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// drawLabel prints text with the builtin 7x13 face; exports do not embed
// fonts.
func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{A: 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of
// endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
