package requests

import "petcare-billing-service/internal/pkg/fhir_dto"

type InvoiceEvent struct {
	EventType  string           `json:"event_type"`
	InvoiceID  string           `json:"invoice_id"`
	Status     string           `json:"status"`
	ArchiveKey string           `json:"archive_key,omitempty"`
	OccurredAt string           `json:"occurred_at"`
	Resource   fhir_dto.Invoice `json:"resource"`
}
