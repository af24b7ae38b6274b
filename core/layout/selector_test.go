package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-mail/letterpress/core"
)

func TestSelectDefaults(t *testing.T) {
	l := Select(core.TierStandard, core.Branding{})
	assert.Equal(t, footerDefault, l.FooterText)
	assert.Equal(t, "Times", l.FontFamily)
	assert.Equal(t, HeaderPostal, l.Header)
	assert.False(t, l.Divider)
}

func TestSelectTierFooters(t *testing.T) {
	assert.Equal(t, footerCivic, Select(core.TierCivic, core.Branding{}).FooterText)
	assert.Equal(t, footerHeirloom, Select(core.TierHeirloom, core.Branding{}).FooterText)
	assert.Equal(t, footerDefault, Select(core.TierVintage, core.Branding{}).FooterText)
}

func TestSelectWhiteLabelOverridesTier(t *testing.T) {
	l := Select(core.TierVintage, core.Branding{FirmName: "Acme Wealth"})
	assert.Equal(t, "Sent on behalf of Acme Wealth", l.FooterText)

	// Overrides even the heirloom footer.
	l = Select(core.TierHeirloom, core.Branding{FirmName: "Acme Wealth"})
	assert.Equal(t, "Sent on behalf of Acme Wealth", l.FooterText)
}

func TestSelectStoryHeader(t *testing.T) {
	l := Select(core.TierHeirloom, core.Branding{Storyteller: "Grandma Ruth"})
	assert.Equal(t, HeaderStory, l.Header)

	l = Select(core.TierStandard, core.Branding{})
	assert.Equal(t, HeaderPostal, l.Header)
}

func TestSelectHeirloomFontFallback(t *testing.T) {
	orig := heirloomFontPath
	t.Cleanup(func() { heirloomFontPath = orig })

	// Asset missing: fixed-width fallback, no error.
	heirloomFontPath = filepath.Join(t.TempDir(), "nope.ttf")
	l := Select(core.TierHeirloom, core.Branding{})
	assert.Equal(t, fallbackFont, l.FontFamily)
	assert.Empty(t, l.FontPath)
	assert.True(t, l.Divider)

	// Asset present: decorative face selected.
	path := filepath.Join(t.TempDir(), "Tangerine-Regular.ttf")
	if err := os.WriteFile(path, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}
	heirloomFontPath = path
	l = Select(core.TierHeirloom, core.Branding{})
	assert.Equal(t, "Tangerine", l.FontFamily)
	assert.Equal(t, path, l.FontPath)
}
