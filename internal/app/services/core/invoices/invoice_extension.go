package invoices

import (
	"math"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/fhir_dto"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ExtensionKind enumerates the invoice extensions this service understands.
type ExtensionKind int

const (
	ExtensionUnknown ExtensionKind = iota
	ExtensionStripeInvoiceID
	ExtensionStripePaymentIntentID
	ExtensionStripePaymentLinkID
	ExtensionStripeCustomerID
	ExtensionStripeChargeID
	ExtensionStripeReceiptURL
	ExtensionStripeCheckoutSessionID
	ExtensionStripeCheckoutURL
	ExtensionPaymentCollectionMode
	ExtensionPaidAt
	ExtensionInvoiceStatus
	ExtensionInvoiceMetadata
	ExtensionAppointmentID
)

var extensionSlugs = map[ExtensionKind]string{
	ExtensionStripeInvoiceID:         "stripe-invoice-id",
	ExtensionStripePaymentIntentID:   "stripe-payment-intent-id",
	ExtensionStripePaymentLinkID:     "stripe-payment-link-id",
	ExtensionStripeCustomerID:        "stripe-customer-id",
	ExtensionStripeChargeID:          "stripe-charge-id",
	ExtensionStripeReceiptURL:        "stripe-receipt-url",
	ExtensionStripeCheckoutSessionID: "stripe-checkout-session-id",
	ExtensionStripeCheckoutURL:       "stripe-checkout-url",
	ExtensionPaymentCollectionMode:   "payment-collection-mode",
	ExtensionPaidAt:                  "paid-at",
	ExtensionInvoiceStatus:           "invoice-status",
	ExtensionInvoiceMetadata:         "invoice-metadata",
	ExtensionAppointmentID:           "appointment-id",
}

// knownExtensionKinds fixes the order extensions are emitted in.
var knownExtensionKinds = []ExtensionKind{
	ExtensionStripeInvoiceID,
	ExtensionStripePaymentIntentID,
	ExtensionStripePaymentLinkID,
	ExtensionStripeCustomerID,
	ExtensionStripeChargeID,
	ExtensionStripeReceiptURL,
	ExtensionStripeCheckoutSessionID,
	ExtensionStripeCheckoutURL,
	ExtensionPaymentCollectionMode,
	ExtensionPaidAt,
	ExtensionInvoiceStatus,
	ExtensionInvoiceMetadata,
	ExtensionAppointmentID,
}

var extensionKindsByURL = lo.MapEntries(extensionSlugs, func(kind ExtensionKind, slug string) (string, ExtensionKind) {
	return constvars.FhirExtensionBaseURL + slug, kind
})

// URL returns the namespaced extension url, or "" for ExtensionUnknown.
func (k ExtensionKind) URL() string {
	slug, ok := extensionSlugs[k]
	if !ok {
		return ""
	}
	return constvars.FhirExtensionBaseURL + slug
}

// ExtensionKindFromURL resolves url against the catalog. Unrecognised urls
// yield ExtensionUnknown.
func ExtensionKindFromURL(url string) ExtensionKind {
	if kind, ok := extensionKindsByURL[url]; ok {
		return kind
	}
	return ExtensionUnknown
}

// invoiceExtensions indexes a resource's extensions by kind. The first entry
// of each kind wins; unknown entries are dropped.
type invoiceExtensions map[ExtensionKind]fhir_dto.Extension

func indexInvoiceExtensions(extensions []fhir_dto.Extension) invoiceExtensions {
	index := make(invoiceExtensions, len(extensions))
	for _, ext := range extensions {
		kind := ExtensionKindFromURL(ext.Url)
		if kind == ExtensionUnknown {
			continue
		}
		if _, seen := index[kind]; !seen {
			index[kind] = ext
		}
	}
	return index
}

func (x invoiceExtensions) stringValue(kind ExtensionKind) *string {
	ext, ok := x[kind]
	if !ok {
		return nil
	}
	return nonEmpty(ext.ValueString)
}

// urlValue accepts the legacy valueUri and valueString shapes after valueUrl.
func (x invoiceExtensions) urlValue(kind ExtensionKind) *string {
	ext, ok := x[kind]
	if !ok {
		return nil
	}
	value, _ := firstOf(
		ptrProvider(ext.ValueUrl),
		ptrProvider(ext.ValueUri),
		ptrProvider(ext.ValueString),
	)
	return value
}

func (x invoiceExtensions) codeValue(kind ExtensionKind) *string {
	ext, ok := x[kind]
	if !ok {
		return nil
	}
	value, _ := firstOf(ptrProvider(ext.ValueCode), ptrProvider(ext.ValueString))
	return value
}

func (x invoiceExtensions) dateTimeValue(kind ExtensionKind) *string {
	ext, ok := x[kind]
	if !ok {
		return nil
	}
	value, _ := firstOf(ptrProvider(ext.ValueDateTime), ptrProvider(ext.ValueString))
	return value
}

func (x invoiceExtensions) metadata() map[string]any {
	ext, ok := x[ExtensionInvoiceMetadata]
	if !ok {
		return nil
	}
	metadata := make(map[string]any, len(ext.Extension))
	for _, child := range ext.Extension {
		if child.Url == "" {
			continue
		}
		if value, ok := metadataValue(child); ok {
			metadata[child.Url] = value
		}
	}
	return metadata
}

func metadataValue(ext fhir_dto.Extension) (any, bool) {
	switch {
	case ext.ValueString != nil:
		return *ext.ValueString, true
	case ext.ValueBoolean != nil:
		return *ext.ValueBoolean, true
	case ext.ValueInteger != nil:
		return *ext.ValueInteger, true
	case ext.ValueDecimal != nil:
		return *ext.ValueDecimal, true
	}
	return nil, false
}

func stringExtension(kind ExtensionKind, value string) fhir_dto.Extension {
	return fhir_dto.Extension{Url: kind.URL(), ValueString: lo.ToPtr(value)}
}

func urlExtension(kind ExtensionKind, value string) fhir_dto.Extension {
	return fhir_dto.Extension{Url: kind.URL(), ValueUrl: lo.ToPtr(value)}
}

func codeExtension(kind ExtensionKind, value string) fhir_dto.Extension {
	return fhir_dto.Extension{Url: kind.URL(), ValueCode: lo.ToPtr(value)}
}

func dateTimeExtension(kind ExtensionKind, value string) fhir_dto.Extension {
	return fhir_dto.Extension{Url: kind.URL(), ValueDateTime: lo.ToPtr(value)}
}

// metadataExtension nests one child per key, in key order. Values that are
// not a string, bool or number are skipped.
func metadataExtension(metadata map[string]any) fhir_dto.Extension {
	keys := lo.Keys(metadata)
	sort.Strings(keys)

	children := make([]fhir_dto.Extension, 0, len(keys))
	for _, key := range keys {
		child, ok := metadataEntry(key, metadata[key])
		if ok {
			children = append(children, child)
		}
	}
	return fhir_dto.Extension{Url: ExtensionInvoiceMetadata.URL(), Extension: children}
}

func metadataEntry(key string, value any) (fhir_dto.Extension, bool) {
	entry := fhir_dto.Extension{Url: key}
	switch v := value.(type) {
	case string:
		entry.ValueString = lo.ToPtr(v)
	case bool:
		entry.ValueBoolean = lo.ToPtr(v)
	case int:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case int8:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case int16:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case int32:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case int64:
		entry.ValueInteger = lo.ToPtr(v)
	case uint8:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case uint16:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case uint32:
		entry.ValueInteger = lo.ToPtr(int64(v))
	case uint:
		return unsignedEntry(entry, uint64(v))
	case uint64:
		return unsignedEntry(entry, v)
	case float32:
		return floatEntry(entry, float64(v))
	case float64:
		return floatEntry(entry, v)
	case decimal.Decimal:
		return floatEntry(entry, v.InexactFloat64())
	default:
		return entry, false
	}
	return entry, true
}

// unsignedEntry falls back to valueDecimal above math.MaxInt64.
func unsignedEntry(entry fhir_dto.Extension, v uint64) (fhir_dto.Extension, bool) {
	if v > math.MaxInt64 {
		return floatEntry(entry, float64(v))
	}
	entry.ValueInteger = lo.ToPtr(int64(v))
	return entry, true
}

func floatEntry(entry fhir_dto.Extension, v float64) (fhir_dto.Extension, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return entry, false
	}
	entry.ValueDecimal = lo.ToPtr(v)
	return entry, true
}

func ptrProvider(value *string) provider[*string] {
	return func() (*string, bool) {
		v := nonEmpty(value)
		return v, v != nil
	}
}

func nonEmpty(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return lo.ToPtr(*value)
}
