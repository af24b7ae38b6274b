// Package core defines the domain types and stage interfaces for Letterpress.
// Each stage of the rendering pipeline is a clean, testable interface.
package core

import "strings"

// Tier is a named service level controlling document layout and the
// fulfillment path a letter takes.
type Tier string

// The closed set of service tiers.
const (
	TierStandard Tier = "standard"
	TierVintage  Tier = "vintage"
	TierCivic    Tier = "civic"
	TierHeirloom Tier = "heirloom"
)

// ParseTier maps a raw tier string onto the closed tier set.
// Unknown or empty values fall back to the plainest layout (Standard)
// rather than erroring — a mis-tagged letter must still be mailable.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierVintage:
		return TierVintage
	case TierCivic:
		return TierCivic
	case TierHeirloom:
		return TierHeirloom
	default:
		return TierStandard
	}
}

// CanonicalAddress is the single normalized address representation all
// rendering logic operates on. Every field is a plain string; only Name
// and Street are expected to be non-empty for a mailable letter.
type CanonicalAddress struct {
	Name       string `json:"name"`
	Street     string `json:"street"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Branding carries optional per-request metadata that changes the layout:
// a white-label firm name for the footer, or story metadata for the
// voice-biography header.
type Branding struct {
	FirmName      string `json:"firm_name"`
	Storyteller   string `json:"storyteller"`
	InterviewDate string `json:"interview_date"`
	QuestionText  string `json:"question_text"`
}

// LetterRequest is the composer's sole input. It is constructed once by the
// caller and never mutated; a render call is a pure function of it.
type LetterRequest struct {
	BodyText      string
	Recipient     CanonicalAddress
	Sender        CanonicalAddress
	Tier          Tier
	SignatureText string
	AudioURL      string
	Branding      Branding
}

// BodyNormalizer converts a raw letter body (possibly a rich-text fragment
// from the web editor) into the plain paragraph text the composer lays out.
type BodyNormalizer interface {
	Normalize(body string) (string, error)
}

// Composer lays a letter request out page by page and serializes
// print-ready document bytes. Compose never fails: internal errors
// degrade to a minimal error document so callers always receive
// renderable bytes.
type Composer interface {
	Compose(req LetterRequest) []byte
}
