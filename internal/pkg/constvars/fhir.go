package constvars

const (
	ResourceInvoice       = "Invoice"
	ResourcePatient       = "Patient"
	ResourceRelatedPerson = "RelatedPerson"
	ResourceOrganization  = "Organization"
	ResourceAppointment   = "Appointment"
	ResourceBundle        = "Bundle"
)

const FhirReferenceSeparator = "/"

const (
	FhirMonetaryComponentStatusBase          = "base"
	FhirMonetaryComponentStatusSurcharge     = "surcharge"
	FhirMonetaryComponentStatusDiscount      = "discount"
	FhirMonetaryComponentStatusTax           = "tax"
	FhirMonetaryComponentStatusInformational = "informational"
)

const (
	FhirInvoiceStatusDraft          = "draft"
	FhirInvoiceStatusIssued         = "issued"
	FhirInvoiceStatusBalanced       = "balanced"
	FhirInvoiceStatusCancelled      = "cancelled"
	FhirInvoiceStatusEnteredInError = "entered-in-error"
)

// Base URL shared by every petcare extension definition.
const FhirExtensionBaseURL = "https://petcare.example/fhir/StructureDefinition/"

const (
	FhirDefaultCurrency = "USD"
)
