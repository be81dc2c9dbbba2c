package render

import (
	"regexp"
	"strings"

	"resume-builder/internal/domain"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Palette slots are read by position: the first color is the primary accent
// (headings, rules), the second the secondary (header and sidebar fills),
// the third the tertiary (links, skill meters). Every variant uses the same
// slots through CSS custom properties.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

// NewPalette maps an ordered color list onto slots. Missing or malformed
// slots take the default palette's color for that slot.
func NewPalette(colors []string) Palette {
	slot := func(i int) string {
		if i < len(colors) {
			c := strings.TrimSpace(colors[i])
			if hexColor.MatchString(c) {
				return strings.ToUpper(c)
			}
		}
		return domain.DefaultColorPalette[i]
	}
	return Palette{Primary: slot(0), Secondary: slot(1), Tertiary: slot(2)}
}

func (p Palette) Slots() []string { return []string{p.Primary, p.Secondary, p.Tertiary} }
