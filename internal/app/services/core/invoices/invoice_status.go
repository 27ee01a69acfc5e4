package invoices

import (
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/constvars"
)

// ToFhirInvoiceStatus maps a canonical status onto the FHIR invoice status
// code. Paid and refunded share "balanced"; the exact status travels in the
// invoice-status extension.
func ToFhirInvoiceStatus(status models.InvoiceStatus) string {
	switch status {
	case models.InvoiceStatusAwaitingPayment:
		return constvars.FhirInvoiceStatusIssued
	case models.InvoiceStatusPaid, models.InvoiceStatusRefunded:
		return constvars.FhirInvoiceStatusBalanced
	case models.InvoiceStatusFailed:
		return constvars.FhirInvoiceStatusEnteredInError
	case models.InvoiceStatusCancelled:
		return constvars.FhirInvoiceStatusCancelled
	default:
		return constvars.FhirInvoiceStatusDraft
	}
}

// FromFhirInvoiceStatus is the lossy reverse of ToFhirInvoiceStatus.
func FromFhirInvoiceStatus(code string) (models.InvoiceStatus, bool) {
	switch code {
	case constvars.FhirInvoiceStatusDraft:
		return models.InvoiceStatusPending, true
	case constvars.FhirInvoiceStatusIssued:
		return models.InvoiceStatusAwaitingPayment, true
	case constvars.FhirInvoiceStatusBalanced:
		return models.InvoiceStatusPaid, true
	case constvars.FhirInvoiceStatusEnteredInError:
		return models.InvoiceStatusFailed, true
	case constvars.FhirInvoiceStatusCancelled:
		return models.InvoiceStatusCancelled, true
	default:
		return "", false
	}
}
