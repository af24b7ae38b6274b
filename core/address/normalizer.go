// Package address implements the Address Normalizer stage.
// Upstream collaborators hand us addresses in whatever shape they have:
// a canonical typed record, a raw mapping using any of several synonymous
// key families, or a JSON blob deserialized from storage. Normalization
// resolves each logical field through a fixed synonym priority table and
// never fails — absent or malformed input yields empty fields.
package address

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkwell-mail/letterpress/core"
)

// defaultCountry is the domestic country code assumed when input omits one.
const defaultCountry = "US"

// Synonym lists per canonical field, in priority order.
// The first key with a non-empty value wins.
var (
	nameKeys    = []string{"name", "full_name", "recipient_name"}
	streetKeys  = []string{"street", "address_line1", "line1", "address1"}
	line2Keys   = []string{"line2", "address_line2", "address2", "unit"}
	cityKeys    = []string{"city", "address_city"}
	stateKeys   = []string{"state", "address_state", "region"}
	postalKeys  = []string{"postal_code", "zip", "address_zip", "zip_code"}
	countryKeys = []string{"country", "country_code"}
)

// Normalize resolves a raw address mapping into a CanonicalAddress.
// A nil or empty map yields an address with empty fields (and the
// domestic country default); no input ever causes an error.
func Normalize(raw map[string]any) core.CanonicalAddress {
	addr := core.CanonicalAddress{
		Name:       lookup(raw, nameKeys),
		Street:     lookup(raw, streetKeys),
		Line2:      lookup(raw, line2Keys),
		City:       lookup(raw, cityKeys),
		State:      lookup(raw, stateKeys),
		PostalCode: lookup(raw, postalKeys),
		Country:    lookup(raw, countryKeys),
	}
	if addr.Country == "" {
		addr.Country = defaultCountry
	}
	return addr
}

// NormalizeJSON resolves a database-serialized JSON blob. Malformed JSON
// degrades to the empty address rather than erroring.
func NormalizeJSON(blob []byte) core.CanonicalAddress {
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return Normalize(nil)
	}
	return Normalize(raw)
}

// lookup returns the first non-empty value among the synonym keys.
// Non-string values (JSON numbers are common for zip codes) are
// stringified rather than skipped.
func lookup(raw map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		default:
			s = fmt.Sprint(t)
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return ""
}

// CarrierPayload derives the flat key-value fields the postal API expects.
func CarrierPayload(a core.CanonicalAddress) map[string]string {
	return map[string]string{
		"name":            a.Name,
		"address_line1":   a.Street,
		"address_line2":   a.Line2,
		"address_city":    a.City,
		"address_state":   a.State,
		"address_zip":     a.PostalCode,
		"address_country": a.Country,
	}
}

// Block derives the human-readable multi-line address block embedded
// directly in letter text. Empty lines are omitted; the country appears
// only for non-domestic mail.
func Block(a core.CanonicalAddress) string {
	var lines []string
	if a.Name != "" {
		lines = append(lines, a.Name)
	}
	if a.Street != "" {
		lines = append(lines, a.Street)
	}
	if a.Line2 != "" {
		lines = append(lines, a.Line2)
	}
	if cl := cityLine(a); cl != "" {
		lines = append(lines, cl)
	}
	if a.Country != "" && a.Country != defaultCountry {
		lines = append(lines, a.Country)
	}
	return strings.Join(lines, "\n")
}

// cityLine formats "City, ST 12345" with whichever parts are present.
func cityLine(a core.CanonicalAddress) string {
	left := a.City
	if a.State != "" {
		if left != "" {
			left += ", "
		}
		left += a.State
	}
	if a.PostalCode != "" {
		if left != "" {
			left += " "
		}
		left += a.PostalCode
	}
	return left
}
