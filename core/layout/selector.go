// Package layout chooses the visual treatment for a letter: footer copy,
// typeface, and header variant, driven by the service tier and any
// white-label branding on the request.
package layout

import (
	"os"

	"github.com/inkwell-mail/letterpress/core"
)

// HeaderVariant selects which header block the composer draws.
type HeaderVariant int

const (
	// HeaderPostal shows the sender block top-left and the recipient
	// block mid-page.
	HeaderPostal HeaderVariant = iota
	// HeaderStory shows the storyteller name, interview date, and the
	// question that prompted the recording.
	HeaderStory
)

// Footer copy per tier. A white-label firm name overrides all of these.
const (
	footerDefault  = "Delivered with care by Letterpress"
	footerHeirloom = "A family story, preserved by Letterpress"
	footerCivic    = "Make your voice count - Letterpress Civic"
)

// heirloomFontPath is the decorative script face for the
// memory-preservation tier, shipped alongside the binary.
var heirloomFontPath = "assets/fonts/Tangerine-Regular.ttf"

// fallbackFont is used when the decorative face is absent or unreadable.
const fallbackFont = "Courier"

// Layout is the visual treatment the composer applies.
type Layout struct {
	FooterText string
	FontFamily string
	// FontPath is set when FontFamily names a TTF the composer must
	// register; empty for built-in faces.
	FontPath string
	Header   HeaderVariant
	// Divider draws a rule between the sender and recipient blocks.
	Divider bool
}

// Select resolves tier and branding into a Layout. It never fails: a
// missing decorative font silently falls back, and unknown tiers get the
// plainest treatment.
func Select(tier core.Tier, branding core.Branding) Layout {
	l := Layout{FontFamily: "Times", Header: HeaderPostal, FooterText: footerDefault}

	switch tier {
	case core.TierHeirloom:
		l.FooterText = footerHeirloom
		l.Divider = true
		if _, err := os.Stat(heirloomFontPath); err == nil {
			l.FontFamily = "Tangerine"
			l.FontPath = heirloomFontPath
		} else {
			l.FontFamily = fallbackFont
		}
	case core.TierCivic:
		l.FooterText = footerCivic
	}

	// White-label branding overrides every tier footer.
	if branding.FirmName != "" {
		l.FooterText = "Sent on behalf of " + branding.FirmName
	}
	if branding.Storyteller != "" {
		l.Header = HeaderStory
	}
	return l
}
