package contracts

import (
	"context"
	"petcare-billing-service/internal/pkg/fhir_dto"
)

// InvoiceArchive keeps an immutable copy of every published invoice document.
type InvoiceArchive interface {
	Store(ctx context.Context, invoice *fhir_dto.Invoice) (string, error)
}
