package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-mail/letterpress/core"
)

func TestNormalizeSynonymEquivalence(t *testing.T) {
	a := Normalize(map[string]any{"address_line1": "123 Main St", "address_city": "Springfield"})
	b := Normalize(map[string]any{"street": "123 Main St", "city": "Springfield"})
	assert.Equal(t, a, b)
	assert.Equal(t, "123 Main St", a.Street)
	assert.Equal(t, "Springfield", a.City)
}

func TestNormalizePriorityOrder(t *testing.T) {
	// "street" outranks "address_line1" when both are present.
	a := Normalize(map[string]any{"street": "1 First Ave", "address_line1": "2 Second Ave"})
	assert.Equal(t, "1 First Ave", a.Street)

	// An empty higher-priority key is skipped, not taken.
	a = Normalize(map[string]any{"street": "  ", "line1": "2 Second Ave"})
	assert.Equal(t, "2 Second Ave", a.Street)
}

func TestNormalizeNilAndEmpty(t *testing.T) {
	for name, raw := range map[string]map[string]any{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			a := Normalize(raw)
			assert.Empty(t, a.Name)
			assert.Empty(t, a.Street)
			assert.Empty(t, a.Line2)
			assert.Empty(t, a.City)
			assert.Empty(t, a.State)
			assert.Empty(t, a.PostalCode)
			assert.Equal(t, "US", a.Country)
		})
	}
}

func TestNormalizeNumericZip(t *testing.T) {
	// JSON round-trips zip codes as float64.
	a := Normalize(map[string]any{"zip": float64(73301)})
	assert.Equal(t, "73301", a.PostalCode)
}

func TestNormalizeCountryKept(t *testing.T) {
	a := Normalize(map[string]any{"country_code": "CA"})
	assert.Equal(t, "CA", a.Country)
}

func TestNormalizeJSON(t *testing.T) {
	a := NormalizeJSON([]byte(`{"recipient_name":"Jane Doe","line1":"1 Elm St","address_zip":"73301"}`))
	assert.Equal(t, "Jane Doe", a.Name)
	assert.Equal(t, "1 Elm St", a.Street)
	assert.Equal(t, "73301", a.PostalCode)

	// Malformed JSON degrades to the empty address.
	bad := NormalizeJSON([]byte(`{not json`))
	assert.Empty(t, bad.Name)
	assert.Equal(t, "US", bad.Country)
}

func TestCarrierPayload(t *testing.T) {
	a := core.CanonicalAddress{
		Name: "Jane Doe", Street: "1 Elm St", City: "Austin",
		State: "TX", PostalCode: "73301", Country: "US",
	}
	p := CarrierPayload(a)
	require.Equal(t, "Jane Doe", p["name"])
	require.Equal(t, "1 Elm St", p["address_line1"])
	require.Equal(t, "", p["address_line2"])
	require.Equal(t, "Austin", p["address_city"])
	require.Equal(t, "TX", p["address_state"])
	require.Equal(t, "73301", p["address_zip"])
	require.Equal(t, "US", p["address_country"])
}

func TestBlock(t *testing.T) {
	a := core.CanonicalAddress{
		Name: "Jane Doe", Street: "1 Elm St", City: "Austin",
		State: "TX", PostalCode: "73301", Country: "US",
	}
	assert.Equal(t, "Jane Doe\n1 Elm St\nAustin, TX 73301", Block(a))
}

func TestBlockPartial(t *testing.T) {
	a := core.CanonicalAddress{Name: "Jane Doe", Street: "1 Elm St", PostalCode: "73301"}
	assert.Equal(t, "Jane Doe\n1 Elm St\n73301", Block(a))
}

func TestBlockForeignCountry(t *testing.T) {
	a := core.CanonicalAddress{Name: "J. Tremblay", Street: "9 Rue Principale", City: "Gatineau", State: "QC", PostalCode: "J8X 3W5", Country: "CA"}
	assert.Equal(t, "J. Tremblay\n9 Rue Principale\nGatineau, QC J8X 3W5\nCA", Block(a))
}
