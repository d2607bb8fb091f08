/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"screendesigner/internal/domain"
)

// PDFOptions controls PDF export behavior.
// Pages are sized to the canvas in points, one page per tab.
// Vector rectangles and built-in Helvetica only; no font embedding.
type PDFOptions struct {
	DrawLabels bool
	TitleBar   bool // print the tab name in the top-left corner
}

// ExportPDF writes all layouts into a single multi-page PDF at outPath,
// one page per tab in sorted tab-id order.
func ExportPDF(layouts map[string]domain.Layout, outPath string, opt PDFOptions) error {
	if len(layouts) == 0 {
		return fmt.Errorf("nothing to export")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: domain.CanvasWidth, Ht: domain.CanvasHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	ids := make([]string, 0, len(layouts))
	for id := range layouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		l := layouts[id]
		pdf.AddPage()
		pdf.SetDrawColor(51, 51, 51)
		pdf.SetLineWidth(1)
		pdf.Rect(0, 0, domain.CanvasWidth, domain.CanvasHeight, "D")

		if opt.TitleBar {
			pdf.SetFont("Helvetica", "B", 18)
			pdf.SetTextColor(51, 51, 51)
			pdf.Text(12, 26, l.TabName)
		}

		for _, w := range l.Widgets {
			r, g, b := pdfFill(w.Type)
			pdf.SetFillColor(r, g, b)
			pdf.Rect(w.X, w.Y, w.Width, w.Height, "FD")
			if opt.DrawLabels {
				pdf.SetFont("Helvetica", "", 12)
				pdf.SetTextColor(0, 0, 0)
				pdf.Text(w.X+4, w.Y+16, fmt.Sprintf("%s %dx%d", w.Type, int(w.Width), int(w.Height)))
			}
		}
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pdfFill(typ string) (int, int, int) {
	c, ok := typeFills[typ]
	if !ok {
		c = defaultFill
	}
	return int(c.R), int(c.G), int(c.B)
}
