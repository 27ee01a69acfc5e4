package invoices

import (
	"math"
	"testing"

	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/fhir_dto"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionCatalog(t *testing.T) {
	t.Run("Every known kind resolves back from its url", func(t *testing.T) {
		for _, kind := range knownExtensionKinds {
			url := kind.URL()
			assert.NotEmpty(t, url)
			assert.Equal(t, kind, ExtensionKindFromURL(url), "url %s", url)
		}
	})

	t.Run("Urls are namespaced", func(t *testing.T) {
		assert.Equal(t, constvars.FhirExtensionBaseURL+"invoice-status", ExtensionInvoiceStatus.URL())
		assert.Equal(t, constvars.FhirExtensionBaseURL+"stripe-checkout-url", ExtensionStripeCheckoutURL.URL())
	})

	t.Run("Unknown urls resolve to unknown", func(t *testing.T) {
		assert.Equal(t, ExtensionUnknown, ExtensionKindFromURL("invoice-status"))
		assert.Equal(t, ExtensionUnknown, ExtensionKindFromURL(""))
		assert.Empty(t, ExtensionUnknown.URL())
	})
}

func TestMetadataExtension(t *testing.T) {
	type custom struct{ Name string }

	ext := metadataExtension(map[string]any{
		"zeta":    "last",
		"alpha":   1,
		"beta":    true,
		"gamma":   2.5,
		"nested":  map[string]any{"a": 1},
		"object":  custom{Name: "x"},
		"nan":     math.NaN(),
		"decimal": dec("3.75"),
		"nothing": nil,
	})

	assert.Equal(t, ExtensionInvoiceMetadata.URL(), ext.Url)
	keys := lo.Map(ext.Extension, func(child fhir_dto.Extension, _ int) string { return child.Url })
	assert.Equal(t, []string{"alpha", "beta", "decimal", "gamma", "zeta"}, keys, "unsupported values should be dropped and keys sorted")

	require.Len(t, ext.Extension, 5)
	assert.Equal(t, lo.ToPtr(int64(1)), ext.Extension[0].ValueInteger)
	assert.Equal(t, lo.ToPtr(true), ext.Extension[1].ValueBoolean)
	assert.Equal(t, lo.ToPtr(3.75), ext.Extension[2].ValueDecimal)
	assert.Equal(t, lo.ToPtr(2.5), ext.Extension[3].ValueDecimal)
	assert.Equal(t, lo.ToPtr("last"), ext.Extension[4].ValueString)

	t.Run("Decoded values keep their wire types", func(t *testing.T) {
		metadata := invoiceExtensions{ExtensionInvoiceMetadata: ext}.metadata()
		assert.Equal(t, map[string]any{
			"alpha":   int64(1),
			"beta":    true,
			"decimal": 3.75,
			"gamma":   2.5,
			"zeta":    "last",
		}, metadata)
	})

	t.Run("Unsigned integers are kept", func(t *testing.T) {
		ext := metadataExtension(map[string]any{
			"huge":  uint64(math.MaxUint64),
			"small": uint(3),
			"wide":  uint64(4),
		})

		require.Len(t, ext.Extension, 3)
		assert.Equal(t, "huge", ext.Extension[0].Url)
		assert.Nil(t, ext.Extension[0].ValueInteger)
		assert.Equal(t, lo.ToPtr(float64(math.MaxUint64)), ext.Extension[0].ValueDecimal)
		assert.Equal(t, lo.ToPtr(int64(3)), ext.Extension[1].ValueInteger)
		assert.Equal(t, lo.ToPtr(int64(4)), ext.Extension[2].ValueInteger)
	})

	t.Run("Unsigned metadata survives a round trip", func(t *testing.T) {
		invoice := fullInvoice()
		invoice.Metadata = map[string]any{"u": uint(3), "u64": uint64(4), "i": 5}

		decoded := Decode(Encode(invoice))
		assert.Equal(t, map[string]any{"i": int64(5), "u": int64(3), "u64": int64(4)}, decoded.Metadata)
	})

	t.Run("Empty metadata emits no extension", func(t *testing.T) {
		invoice := fullInvoice()
		invoice.Metadata = map[string]any{"dropped": []string{"x"}}

		resource := Encode(invoice)
		_, found := lo.Find(resource.Extension, func(e fhir_dto.Extension) bool {
			return e.Url == ExtensionInvoiceMetadata.URL()
		})
		assert.False(t, found)
	})
}
