package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-mail/letterpress/core"
)

func writeRequestFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestReadRequest(t *testing.T) {
	path := writeRequestFile(t, `{
		"body_text": "Thank you",
		"recipient": {"name": "Jane Doe", "address_line1": "1 Elm St", "address_city": "Austin", "state": "TX", "zip": "73301"},
		"sender": {"name": "John Doe", "street": "2 Oak St"},
		"tier": "Vintage"
	}`)
	raw, err := readRequest(path)
	require.NoError(t, err)
	assert.Equal(t, "Thank you", raw.BodyText)
	assert.Equal(t, "Vintage", raw.Tier)
	assert.Equal(t, "Jane Doe", raw.Recipient["name"])
}

func TestReadRequestErrors(t *testing.T) {
	_, err := readRequest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeRequestFile(t, `{broken`)
	_, err = readRequest(path)
	assert.Error(t, err)
}

func TestBuildRequestNormalizesAddresses(t *testing.T) {
	raw := rawRequest{
		BodyText:  "Thank you",
		Recipient: map[string]any{"recipient_name": "Jane Doe", "line1": "1 Elm St", "address_zip": "73301"},
		Sender:    map[string]any{"name": "John Doe", "street": "2 Oak St"},
		Tier:      "Heirloom",
	}
	req := buildRequest(raw)
	assert.Equal(t, "Jane Doe", req.Recipient.Name)
	assert.Equal(t, "1 Elm St", req.Recipient.Street)
	assert.Equal(t, "73301", req.Recipient.PostalCode)
	assert.Equal(t, core.TierHeirloom, req.Tier)
}

func TestBuildRequestUnknownTier(t *testing.T) {
	req := buildRequest(rawRequest{Tier: "platinum-deluxe"})
	assert.Equal(t, core.TierStandard, req.Tier)
}

func TestBuildRequestSenderFromEnv(t *testing.T) {
	t.Setenv("LETTERPRESS_SENDER_NAME", "Letterpress Fulfillment")
	t.Setenv("LETTERPRESS_SENDER_STREET", "100 Print Shop Rd")
	t.Setenv("LETTERPRESS_SENDER_CITY", "Austin")
	t.Setenv("LETTERPRESS_SENDER_STATE", "TX")
	t.Setenv("LETTERPRESS_SENDER_ZIP", "73301")

	req := buildRequest(rawRequest{
		Recipient: map[string]any{"name": "Jane Doe", "street": "1 Elm St"},
	})
	assert.Equal(t, "Letterpress Fulfillment", req.Sender.Name)
	assert.Equal(t, "100 Print Shop Rd", req.Sender.Street)

	// An explicit sender wins over the env default.
	req = buildRequest(rawRequest{
		Sender: map[string]any{"name": "John Doe", "street": "2 Oak St"},
	})
	assert.Equal(t, "John Doe", req.Sender.Name)
}

func TestBuildRequestFirmNameFromEnv(t *testing.T) {
	t.Setenv("LETTERPRESS_FIRM_NAME", "Acme Wealth")
	req := buildRequest(rawRequest{})
	assert.Equal(t, "Acme Wealth", req.Branding.FirmName)

	// Request branding wins.
	req = buildRequest(rawRequest{Branding: core.Branding{FirmName: "Other Firm"}})
	assert.Equal(t, "Other Firm", req.Branding.FirmName)
}

func TestValidateRequest(t *testing.T) {
	err := validateRequest(core.LetterRequest{})
	assert.Error(t, err)

	err = validateRequest(core.LetterRequest{
		Recipient: core.CanonicalAddress{Name: "Jane Doe", Street: "1 Elm St"},
	})
	assert.NoError(t, err)
}
