// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Geometry is the size of a document page in PDF points.
type Geometry struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// Role is the structural classification assigned to one line of resume text.
type Role string

const (
	RoleTitle   Role = "title"
	RoleHeading Role = "heading"
	RoleBullet  Role = "bullet"
	RoleBody    Role = "body"
	RoleBlank   Role = "blank"
)

// LineRecord is one line of text tagged with its Role. Records are derived
// per render and never persisted.
type LineRecord struct {
	// Index is the zero-based position of the line in the source text,
	// counting blank lines.
	Index int `json:"index" yaml:"index"`

	// Text is the trimmed line.
	Text string `json:"text" yaml:"text"`

	Role Role `json:"role" yaml:"role"`
}

// Contact is the best-effort contact information found in a resume.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
}
