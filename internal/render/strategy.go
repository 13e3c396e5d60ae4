// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/resume-tailor/internal/classify"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

const fontFamily = "Helvetica"

// MaxLineRunes is the character budget of a LineDraw line. Longer lines are
// word-wrapped.
const MaxLineRunes = 90

// LineDraw draws each line as plain canvas text at a fixed 0.2in line pitch.
// Bullets are indented with two spaces and long lines are wrapped by
// character count.
type LineDraw struct{}

func (LineDraw) Name() types.RenderStrategy { return types.StrategyLineDraw }

func (LineDraw) Preset() classify.Preset { return classify.PresetStrict }

func (LineDraw) BlankAdvance() float64 { return 0.2 * inch }

func (LineDraw) Style(role types.Role) Style {
	s := Style{Family: fontFamily, Size: 10, LineHeight: 0.2 * inch}
	switch role {
	case types.RoleTitle:
		s.Bold = true
		s.Size = 16
		s.LineHeight = 0.3 * inch
		s.Center = true
	case types.RoleHeading:
		s.Bold = true
		s.Size = 12
		s.SpaceBefore = 0.3 * inch
	}
	return s
}

func (LineDraw) Decorate(role types.Role, text string) string {
	if role == types.RoleBullet {
		return "  " + text
	}
	return text
}

func (LineDraw) Wrap(text string, _ Style, _ float64, _ Measurer) []string {
	if utf8.RuneCountInString(text) <= MaxLineRunes {
		return []string{text}
	}
	return wrapWords(text, func(candidate string) bool {
		return utf8.RuneCountInString(candidate) < MaxLineRunes
	})
}

// ParagraphFlow treats each line as a paragraph with its own leading and
// spacing, reflowed by measured width between the left and right margins.
type ParagraphFlow struct{}

func (ParagraphFlow) Name() types.RenderStrategy { return types.StrategyParagraphFlow }

func (ParagraphFlow) Preset() classify.Preset { return classify.PresetParagraph }

func (ParagraphFlow) BlankAdvance() float64 { return 0.1 * inch }

// paragraphHeadingSpace is the gap above a heading: a 0.15in spacer plus the
// heading's own 12pt space-before.
const paragraphHeadingSpace = 0.15*inch + 12

func (ParagraphFlow) Style(role types.Role) Style {
	switch role {
	case types.RoleTitle:
		return Style{Family: fontFamily, Bold: true, Size: 16, LineHeight: 22, SpaceAfter: 6, Center: true}
	case types.RoleHeading:
		return Style{Family: fontFamily, Bold: true, Size: 12, LineHeight: 18, SpaceBefore: paragraphHeadingSpace, SpaceAfter: 10}
	case types.RoleBullet:
		return Style{Family: fontFamily, Size: 10, LineHeight: 14, SpaceAfter: 6, Indent: 10}
	}
	return Style{Family: fontFamily, Size: 10, LineHeight: 14, SpaceAfter: 6}
}

func (ParagraphFlow) Decorate(_ types.Role, text string) string { return text }

func (ParagraphFlow) Wrap(text string, style Style, maxWidth float64, m Measurer) []string {
	if m.Width(style, text) <= maxWidth {
		return []string{text}
	}
	return wrapWords(text, func(candidate string) bool {
		return m.Width(style, candidate) <= maxWidth
	})
}

// wrapWords packs words greedily into lines accepted by fits. A word that
// does not fit on an empty line is emitted whole.
func wrapWords(text string, fits func(string) bool) []string {
	var (
		out []string
		cur string
	)
	for _, w := range strings.Fields(text) {
		if cur == "" {
			cur = w
			continue
		}
		if candidate := cur + " " + w; fits(candidate) {
			cur = candidate
			continue
		}
		out = append(out, cur)
		cur = w
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
