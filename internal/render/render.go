// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render lays classified resume lines out on fixed-size pages and
// writes the result as a PDF.
//
// Layout is split from painting. Layout runs the page-break state machine
// shared by every Strategy and yields a Document of placed lines; Write
// paints a Document with gofpdf. A Strategy supplies per-role styles and the
// wrapping rule, nothing else.
//
// Coordinates follow PDF convention: y is measured upward from the bottom
// edge of the page, in points.
package render

import (
	"fmt"
	"strings"

	"github.com/pdiddy/resume-tailor/internal/classify"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

// inch is one inch in PDF points.
const inch = 72.0

// Margins are page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// DefaultMargins are 0.75in on every side.
var DefaultMargins = Margins{
	Top:    0.75 * inch,
	Bottom: 0.75 * inch,
	Left:   0.75 * inch,
	Right:  0.75 * inch,
}

// Style is the typographic treatment of one Role.
type Style struct {
	Family string
	Bold   bool
	Size   float64

	// LineHeight is the cursor advance after each drawn sub-line.
	LineHeight float64

	// SpaceBefore and SpaceAfter are applied once per source line.
	SpaceBefore float64
	SpaceAfter  float64

	// Indent shifts the line right of the left margin.
	Indent float64

	// Center places the line in the middle of the page width.
	Center bool
}

// Measurer reports the rendered width of text in points.
type Measurer interface {
	Width(s Style, text string) float64
}

// Strategy is one way of turning classified lines into drawn lines. All
// strategies share Layout's pagination.
type Strategy interface {
	// Name identifies the strategy in configuration.
	Name() types.RenderStrategy

	// Preset is the classifier preset the strategy was tuned against.
	Preset() classify.Preset

	// Style returns the treatment for a non-blank role.
	Style(role types.Role) Style

	// BlankAdvance is the cursor advance for a blank line.
	BlankAdvance() float64

	// Decorate adjusts line text before wrapping.
	Decorate(role types.Role, text string) string

	// Wrap splits text into sub-lines, in order, that fit maxWidth.
	Wrap(text string, style Style, maxWidth float64, m Measurer) []string
}

// StrategyByName returns the strategy configured as name. An empty name
// selects paragraph flow.
func StrategyByName(name types.RenderStrategy) (Strategy, error) {
	switch name {
	case "", types.StrategyParagraphFlow:
		return ParagraphFlow{}, nil
	case types.StrategyLineDraw:
		return LineDraw{}, nil
	}
	return nil, fmt.Errorf("unknown render strategy %q (want %q or %q)",
		name, types.StrategyLineDraw, types.StrategyParagraphFlow)
}

// Placed is one drawn sub-line.
type Placed struct {
	Text string
	X, Y float64
	Role types.Role

	Style Style

	// Source is the Index of the LineRecord the text came from.
	Source int
}

// Page is one output page in drawing order.
type Page struct {
	Lines []Placed
}

// Document is the laid-out result. Every page has the document's Geometry.
type Document struct {
	Geometry types.Geometry
	Margins  Margins
	Pages    []Page
}

// Text returns the drawn text, one sub-line per line, in page order.
func (d *Document) Text() string {
	var b strings.Builder
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Layout places lines on pages of size g using s. It starts with one page and
// adds pages whenever the cursor has dropped below the bottom margin before a
// sub-line is drawn. Blank lines only move the cursor; they never start a page.
func Layout(lines []types.LineRecord, g types.Geometry, s Strategy, m Measurer) (*Document, error) {
	if !g.Valid() {
		return nil, &types.RenderError{
			Op:  "layout",
			Err: fmt.Errorf("invalid page size %.1fx%.1f", g.Width, g.Height),
		}
	}

	p := newPaginator(g, DefaultMargins)

	for _, line := range lines {
		if line.Role == types.RoleBlank {
			p.advance(s.BlankAdvance())
			continue
		}

		style := s.Style(line.Role)
		text := s.Decorate(line.Role, line.Text)
		maxWidth := g.Width - p.margins.Left - p.margins.Right - style.Indent

		p.advance(style.SpaceBefore)
		for _, sub := range s.Wrap(text, style, maxWidth, m) {
			p.place(sub, line, style, m)
		}
		p.advance(style.SpaceAfter)
	}

	return p.doc, nil
}

// cursor is the vertical write position on the current page.
type cursor struct {
	y float64
}

// paginator owns the cursor and the growing document for one layout pass.
type paginator struct {
	doc     *Document
	margins Margins
	cursor  cursor
}

func newPaginator(g types.Geometry, m Margins) *paginator {
	p := &paginator{
		doc:     &Document{Geometry: g, Margins: m},
		margins: m,
	}
	p.newPage()
	return p
}

func (p *paginator) newPage() {
	p.doc.Pages = append(p.doc.Pages, Page{})
	p.cursor.y = p.doc.Geometry.Height - p.margins.Top
}

func (p *paginator) advance(d float64) {
	p.cursor.y -= d
}

func (p *paginator) place(text string, line types.LineRecord, style Style, m Measurer) {
	if p.cursor.y < p.margins.Bottom {
		p.newPage()
	}

	x := p.margins.Left + style.Indent
	if style.Center {
		x = (p.doc.Geometry.Width - m.Width(style, text)) / 2
	}

	cur := &p.doc.Pages[len(p.doc.Pages)-1]
	cur.Lines = append(cur.Lines, Placed{
		Text:   text,
		X:      x,
		Y:      p.cursor.y,
		Role:   line.Role,
		Style:  style,
		Source: line.Index,
	})
	p.cursor.y -= style.LineHeight
}
