// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/resume-tailor/pkg/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`[+(]?[1-9][0-9 .\-()]{8,}[0-9]`)
)

// ParseContact pulls the first email address, the first phone-like number and
// the first non-empty line (taken as the name) out of resume text. Any field
// may be empty.
func ParseContact(text string) types.Contact {
	var c types.Contact

	c.Email = emailPattern.FindString(text)
	c.Phone = strings.TrimSpace(phonePattern.FindString(text))

	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			c.Name = s
			break
		}
	}
	return c
}
