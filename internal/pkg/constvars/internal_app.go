package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
)

const (
	REQUEST_ID_PREFIX = "PETCARE_BILLING_"
)

const (
	InvoiceArchiveObjectPrefix = "invoices/"
	InvoiceArchiveObjectSuffix = ".json"

	InvoiceArchiveMetadataInvoiceID = "invoice-id"
	InvoiceArchiveMetadataDigest    = "content-digest"
	InvoiceArchiveDigestPrefix      = "blake2b-256:"
)

const (
	InvoiceEventPublished = "invoice.published"
)
