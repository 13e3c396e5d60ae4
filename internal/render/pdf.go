// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

// PDFMeasurer measures text with gofpdf's core font metrics. Text is
// translated to cp1252 first, as it is when painted.
type PDFMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewPDFMeasurer returns a measurer backed by an off-screen gofpdf document.
func NewPDFMeasurer() *PDFMeasurer {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	return &PDFMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *PDFMeasurer) Width(s Style, text string) float64 {
	m.pdf.SetFont(s.Family, fontStyle(s), s.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

func fontStyle(s Style) string {
	if s.Bold {
		return "B"
	}
	return ""
}

// Write paints doc as a PDF at target. Every page gets the document's
// geometry. The PDF is written to a temporary file beside target and renamed
// into place, so target either does not exist or is complete.
func Write(doc *Document, target string) error {
	g := doc.Geometry
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(doc.Margins.Left, doc.Margins.Top, doc.Margins.Right)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, page := range doc.Pages {
		pdf.AddPage()
		for _, l := range page.Lines {
			if lost := Unencodable(l.Text); len(lost) > 0 {
				logrus.WithFields(logrus.Fields{
					"target":  filepath.Base(target),
					"page":    i + 1,
					"line":    l.Source,
					"dropped": string(lost),
				}).Warn("characters outside cp1252 cannot be drawn")
			}
			pdf.SetFont(l.Style.Family, fontStyle(l.Style), l.Style.Size)
			pdf.Text(l.X, g.Height-l.Y, tr(l.Text))
		}
	}
	if pdf.Err() {
		return &types.RenderError{Op: "drawing", Err: pdf.Error()}
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return &types.RenderError{Op: "creating temporary output", Err: err}
	}
	tmpName := tmp.Name()

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &types.RenderError{Op: "writing " + target, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &types.RenderError{Op: "writing " + target, Err: err}
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return &types.RenderError{Op: "finalizing " + target, Err: err}
	}
	return nil
}

// Unencodable returns the runes of s that the cp1252 core fonts cannot draw,
// in order of appearance.
func Unencodable(s string) []rune {
	var lost []rune
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			lost = append(lost, r)
		}
	}
	return lost
}

// RenderFile lays out lines at geometry g with strategy s and writes the
// PDF to target.
func RenderFile(lines []types.LineRecord, g types.Geometry, s Strategy, target string) (*Document, error) {
	doc, err := Layout(lines, g, s, NewPDFMeasurer())
	if err != nil {
		return nil, err
	}
	if err := Write(doc, target); err != nil {
		return nil, err
	}
	return doc, nil
}

// String describes a document for logs.
func (d *Document) String() string {
	return fmt.Sprintf("%d page(s) at %.1fx%.1fpt", len(d.Pages), d.Geometry.Width, d.Geometry.Height)
}
