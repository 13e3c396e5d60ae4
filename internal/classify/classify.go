// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a structural Role to each line of plain resume
// text using lexical cues only: position, case, section-name prefixes and
// bullet glyphs.
//
// The heuristics are deliberately loose. A short all-caps sentence is
// indistinguishable from a section heading and is classified as one.
package classify

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

const (
	// titleLines is the number of leading lines eligible for Title.
	titleLines = 3
	// titleMaxRunes bounds a Title candidate after line 0.
	titleMaxRunes = 50
)

// Preset is one set of classification rules. The two presets disagree on
// vocabulary, case sensitivity and bullet glyphs; neither is authoritative.
type Preset struct {
	Name string

	// HeadingPrefixes are section names that mark a heading.
	HeadingPrefixes []string

	// FoldCase matches HeadingPrefixes case-insensitively.
	FoldCase bool

	// BulletPrefixes mark a bullet item.
	BulletPrefixes []string
}

// PresetParagraph is the preset used by the paragraph-flow renderer.
var PresetParagraph = Preset{
	Name: "paragraph",
	HeadingPrefixes: []string{
		"EXPERIENCE", "EDUCATION", "SKILLS", "SUMMARY",
		"PROFESSIONAL", "WORK", "OBJECTIVE", "CERTIFICATIONS",
	},
	FoldCase:       true,
	BulletPrefixes: []string{"•", "-", "*"},
}

// PresetStrict is the preset used by the line-drawing renderer. The last
// bullet prefix is a UTF-8 bullet decoded as Windows-1252.
var PresetStrict = Preset{
	Name: "strict",
	HeadingPrefixes: []string{
		"EXPERIENCE", "EDUCATION", "SKILLS", "SUMMARY",
		"PROFESSIONAL", "WORK",
	},
	BulletPrefixes: []string{"•", "-", "*", "â€¢"},
}

// PresetByName returns the preset called name.
func PresetByName(name string) (Preset, error) {
	switch name {
	case PresetParagraph.Name:
		return PresetParagraph, nil
	case PresetStrict.Name:
		return PresetStrict, nil
	}
	return Preset{}, fmt.Errorf("unknown classifier preset %q (want %q or %q)",
		name, PresetParagraph.Name, PresetStrict.Name)
}

// Classify returns the Role of line at position index. The first matching
// rule wins: blank, title, heading, bullet, then body.
func Classify(line string, index int, p Preset) types.Role {
	s := strings.TrimSpace(line)

	switch {
	case s == "":
		return types.RoleBlank
	case isTitle(s, index):
		return types.RoleTitle
	case isUpper(s) || p.hasHeadingPrefix(s):
		return types.RoleHeading
	case p.hasBulletPrefix(s):
		return types.RoleBullet
	}
	return types.RoleBody
}

// Lines splits text on line breaks and classifies every line in order.
func Lines(text string, p Preset) []types.LineRecord {
	raw := strings.Split(text, "\n")
	records := make([]types.LineRecord, 0, len(raw))
	for i, line := range raw {
		records = append(records, types.LineRecord{
			Index: i,
			Text:  strings.TrimSpace(line),
			Role:  Classify(line, i, p),
		})
	}
	return records
}

func isTitle(s string, index int) bool {
	if index == 0 {
		return true
	}
	return index < titleLines &&
		utf8.RuneCountInString(s) < titleMaxRunes &&
		!strings.Contains(s, "@")
}

// isUpper reports whether s has at least one cased letter and no lower-case
// letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func (p Preset) hasHeadingPrefix(s string) bool {
	if p.FoldCase {
		s = strings.ToUpper(s)
	}
	for _, h := range p.HeadingPrefixes {
		if strings.HasPrefix(s, h) {
			return true
		}
	}
	return false
}

func (p Preset) hasBulletPrefix(s string) bool {
	for _, b := range p.BulletPrefixes {
		if strings.HasPrefix(s, b) {
			return true
		}
	}
	return false
}
