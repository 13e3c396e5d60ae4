// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// rowTolerance is the fraction of the font size two glyph baselines may
	// differ by and still share a row.
	rowTolerance = 0.5

	// wordGap is the fraction of the font size a horizontal gap between
	// glyphs must exceed to read as a space.
	wordGap = 0.2

	// minFontSize stands in for glyphs that report no size.
	minFontSize = 2.0
)

// rows groups the glyphs of one page into visual rows, top to bottom, and
// returns each row as a line of text read left to right. Glyphs that share a
// row but are separated by a gap get a space between them.
func rows(texts []pdf.Text) []string {
	glyphs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			glyphs = append(glyphs, t)
		}
	}
	if len(glyphs) == 0 {
		return nil
	}

	// Stable so glyphs at the same position keep content-stream order.
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].Y > glyphs[j].Y })

	var (
		out []string
		row []pdf.Text
	)
	flush := func() {
		if len(row) > 0 {
			out = append(out, joinRow(row))
		}
		row = nil
	}
	for _, g := range glyphs {
		if len(row) > 0 && math.Abs(row[0].Y-g.Y) > rowTolerance*fontSize(row[0]) {
			flush()
		}
		row = append(row, g)
	}
	flush()
	return out
}

// joinRow orders a row left to right and concatenates it.
func joinRow(row []pdf.Text) string {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var b strings.Builder
	prevEnd := 0.0
	for i, g := range row {
		if i > 0 && g.X-prevEnd > wordGap*fontSize(g) &&
			!endsInSpace(b.String()) && !startsWithSpace(g.S) {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prevEnd = math.Max(prevEnd, g.X+g.W)
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

func fontSize(t pdf.Text) float64 {
	return math.Max(math.Abs(t.FontSize), minFontSize)
}

func endsInSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
