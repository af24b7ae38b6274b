// Package render implements the page composer. It lays a letter request
// out onto Letter-size pages — date line, header, body, signature,
// optional playback QR, per-page footer — and serializes print-ready PDF
// bytes. Compose never fails: anything that goes wrong inside degrades to
// a minimal error document so the caller always has renderable bytes.
package render

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/inkwell-mail/letterpress/core"
	"github.com/inkwell-mail/letterpress/core/address"
	"github.com/inkwell-mail/letterpress/core/layout"
	"github.com/inkwell-mail/letterpress/core/sanitize"
)

// Page geometry in points. Letter stock (612x792) with a uniform one-inch
// margin; the bottom reservation leaves clearance for the footer band so
// auto page breaks never collide with it.
const (
	pageMargin  = 72.0
	footerClear = 90.0
	bodyLineHt  = 14.0
	addrLineHt  = 13.0
)

// placeholderBody keeps a letter from ever printing blank.
const placeholderBody = "(This letter was sent without a message.)"

// playerURLTemplate is the fixed playback page the QR symbol points at.
const playerURLTemplate = "https://listen.letterpress.ink/play?src=%s"

// letterZone is the fixed stamp timezone: letters carry the print shop's
// local date no matter where the render runs.
var letterZone = time.FixedZone("CST", -6*60*60)

// QREncoder produces a PNG symbol for a URL at the given pixel size.
type QREncoder func(url string, size int) ([]byte, error)

// Composer renders letter requests into PDF bytes. The zero value is
// ready to use; Now and QR are injectable for tests.
type Composer struct {
	Now func() time.Time
	QR  QREncoder
}

// New creates a Composer.
func New() *Composer {
	return &Composer{}
}

// Compose lays out the letter and returns the document bytes. It never
// returns empty bytes and never panics: internal failures produce an
// error document instead.
func (c *Composer) Compose(req core.LetterRequest) []byte {
	out, err := c.render(req)
	if err != nil {
		return errorDocument(err)
	}
	return out
}

func (c *Composer) render(req core.LetterRequest) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("composing letter: %v", r)
		}
	}()

	lay := layout.Select(req.Tier, req.Branding)

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCreationDate(c.now())
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerClear)

	d := &letterDoc{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		lay: lay,
	}
	d.registerBodyFont(lay)
	pdf.SetFooterFunc(d.footer)
	pdf.AddPage()

	d.dateLine(c.now())
	d.header(req)
	d.body(req.BodyText)
	d.signature(req.SignatureText)
	c.audioSection(d, req.AudioURL)

	if pdf.Err() {
		return nil, fmt.Errorf("composing letter: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing letter: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// letterDoc carries per-render state so the drawing helpers stay small.
type letterDoc struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	lay      layout.Layout
	bodyFont string
	bodyUTF8 bool
}

// enc sanitizes then re-encodes text for the core (cp1252) fonts.
func (d *letterDoc) enc(s string) string {
	return d.tr(sanitize.Sanitize(s))
}

// encBody sanitizes text for the body font. A registered UTF-8 face takes
// the sanitized string as-is; core fonts need the cp1252 translation.
func (d *letterDoc) encBody(s string) string {
	if d.bodyUTF8 {
		return sanitize.Sanitize(s)
	}
	return d.enc(s)
}

// registerBodyFont loads the layout's TTF when one is named. Unreadable
// or corrupt font files fall back to Courier; a bad asset must never take
// the letter down with it.
func (d *letterDoc) registerBodyFont(lay layout.Layout) {
	d.bodyFont = lay.FontFamily
	if lay.FontPath == "" {
		return
	}
	ttf, err := os.ReadFile(lay.FontPath)
	if err != nil {
		d.bodyFont = "Courier"
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				d.bodyFont = "Courier"
			}
		}()
		d.pdf.AddUTF8FontFromBytes(lay.FontFamily, "", ttf)
		if d.pdf.Err() {
			d.pdf.ClearError()
			d.bodyFont = "Courier"
			return
		}
		d.bodyUTF8 = true
	}()
}

// dateLine stamps the letter date right-aligned under the top margin.
func (d *letterDoc) dateLine(now time.Time) {
	d.pdf.SetFont("Times", "", 11)
	d.pdf.CellFormat(0, bodyLineHt, now.In(letterZone).Format("January 2, 2006"), "", 1, "R", false, 0, "")
	d.pdf.Ln(10)
}

// header draws either the story-metadata block or the postal address
// blocks, per the selected layout.
func (d *letterDoc) header(req core.LetterRequest) {
	if d.lay.Header == layout.HeaderStory {
		d.storyHeader(req.Branding)
		return
	}
	d.postalHeader(req)
}

func (d *letterDoc) storyHeader(b core.Branding) {
	d.pdf.SetFont("Times", "B", 13)
	d.pdf.CellFormat(0, 16, d.enc(b.Storyteller), "", 1, "L", false, 0, "")
	if b.InterviewDate != "" {
		d.pdf.SetFont("Times", "", 10)
		d.pdf.SetTextColor(100, 100, 100)
		d.pdf.CellFormat(0, addrLineHt, d.enc("Recorded "+b.InterviewDate), "", 1, "L", false, 0, "")
		d.pdf.SetTextColor(0, 0, 0)
	}
	if b.QuestionText != "" {
		d.pdf.SetFont("Times", "I", 11)
		d.pdf.MultiCell(0, bodyLineHt, d.enc(b.QuestionText), "", "L", false)
	}
	d.rule()
	d.pdf.Ln(18)
}

func (d *letterDoc) postalHeader(req core.LetterRequest) {
	d.pdf.SetFont("Times", "", 10)
	d.pdf.MultiCell(0, 12, d.enc(address.Block(req.Sender)), "", "L", false)
	d.pdf.Ln(12)
	if d.lay.Divider {
		d.rule()
	}
	d.pdf.Ln(12)
	d.pdf.SetFont("Times", "", 11)
	d.pdf.MultiCell(0, addrLineHt, d.enc(address.Block(req.Recipient)), "", "L", false)
	d.pdf.Ln(24)
}

// rule draws a light horizontal divider at the current cursor.
func (d *letterDoc) rule() {
	w, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY() + 4
	d.pdf.SetDrawColor(170, 170, 170)
	d.pdf.Line(pageMargin, y, w-pageMargin, y)
	d.pdf.SetDrawColor(0, 0, 0)
}

// body writes the letter text as wrapped paragraphs. An empty body after
// sanitization prints the fixed placeholder so no letter mails blank.
func (d *letterDoc) body(text string) {
	d.pdf.SetFont(d.bodyFont, "", 12)
	d.pdf.MultiCell(0, bodyLineHt, d.encBody(printableBody(text)), "", "L", false)
}

// printableBody resolves the text actually printed for a raw body.
func printableBody(text string) string {
	if strings.TrimSpace(sanitize.Sanitize(text)) == "" {
		return placeholderBody
	}
	return text
}

func (d *letterDoc) signature(text string) {
	if text == "" {
		return
	}
	d.pdf.Ln(18)
	// A registered UTF-8 face has no italic variant; use its only style.
	style := "I"
	if d.bodyUTF8 {
		style = ""
	}
	d.pdf.SetFont(d.bodyFont, style, 12)
	d.pdf.MultiCell(0, bodyLineHt, d.encBody(text), "", "L", false)
}

// audioSection embeds a scannable playback symbol for the recording.
// Symbol generation failing just skips the section; the letter still mails.
func (c *Composer) audioSection(d *letterDoc, audioURL string) {
	if audioURL == "" {
		return
	}
	enc := c.QR
	if enc == nil {
		enc = encodeQR
	}
	png, err := enc(playerURL(audioURL), 256)
	if err != nil {
		return
	}

	const qrSide = 108.0 // 1.5in
	const captionHt = 24.0
	w, h := d.pdf.GetPageSize()
	if d.pdf.GetY()+qrSide+captionHt > h-footerClear {
		d.pdf.AddPage()
	} else {
		d.pdf.Ln(24)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader("audio-qr", opts, bytes.NewReader(png))
	if d.pdf.Err() {
		d.pdf.ClearError()
		return
	}
	d.pdf.ImageOptions("audio-qr", (w-qrSide)/2, d.pdf.GetY(), qrSide, qrSide, false, opts, 0, "")
	d.pdf.SetY(d.pdf.GetY() + qrSide + 8)
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(100, 100, 100)
	d.pdf.CellFormat(0, 12, "Scan to hear this story read aloud.", "", 1, "C", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

// playerURL builds the fixed-template playback URL for a recording.
func playerURL(audioURL string) string {
	return fmt.Sprintf(playerURLTemplate, url.QueryEscape(audioURL))
}

// footer runs on every page close: centered tagline half an inch from the
// bottom edge, plus a page number from the second page on.
func (d *letterDoc) footer() {
	d.pdf.SetY(-36)
	d.pdf.SetFont("Helvetica", "I", 9)
	d.pdf.SetTextColor(120, 120, 120)
	d.pdf.CellFormat(0, 12, d.enc(d.lay.FooterText), "", 0, "C", false, 0, "")
	if d.pdf.PageNo() > 1 {
		d.pdf.SetY(-36)
		d.pdf.CellFormat(0, 12, fmt.Sprintf("Page %d", d.pdf.PageNo()), "", 0, "R", false, 0, "")
	}
	d.pdf.SetTextColor(0, 0, 0)
}

// errorDocument is the last-resort output: a minimal one-page document
// naming the failure, so callers always receive renderable bytes.
// Compression stays off so operators can grep the artifact directly.
func errorDocument(cause error) []byte {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 20, "Error Generating Letter", "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.MultiCell(0, bodyLineHt, tr(sanitize.Sanitize(cause.Error())), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil || buf.Len() == 0 {
		// Core fonts and a blank page cannot realistically fail, but the
		// non-empty contract holds regardless.
		return []byte("%PDF-1.3\n% Error Generating Letter: " + cause.Error() + "\n")
	}
	return buf.Bytes()
}
