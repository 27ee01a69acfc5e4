package contracts

import (
	"context"
	"net/url"
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/fhir_dto"
)

type InvoiceFhirClient interface {
	Search(ctx context.Context, params InvoiceSearchParams) ([]fhir_dto.Invoice, error)
	FindByID(ctx context.Context, invoiceID string) (*fhir_dto.Invoice, error)
	Update(ctx context.Context, invoice *fhir_dto.Invoice) (*fhir_dto.Invoice, error)
}

type InvoiceUsecase interface {
	ParseResource(raw []byte) (*models.Invoice, error)
	DecodeResource(resource *fhir_dto.Invoice) (*models.Invoice, error)
	EncodeResource(invoice *models.Invoice) (*fhir_dto.Invoice, error)
	Publish(ctx context.Context, invoice *models.Invoice) (*fhir_dto.Invoice, error)
	Fetch(ctx context.Context, invoiceID string) (*models.Invoice, error)
	SearchByAppointment(ctx context.Context, appointmentID string) ([]models.Invoice, error)
}

type InvoiceSearchParams struct {
	ID        string
	Subject   string
	Recipient string
	Account   string
	Status    string
}

// ToQueryParam converts InvoiceSearchParams into URL query parameters
func (p InvoiceSearchParams) ToQueryParam() url.Values {
	params := url.Values{}

	if p.ID != "" {
		params.Add("_id", p.ID)
	}
	if p.Subject != "" {
		params.Add("subject", p.Subject)
	}
	if p.Recipient != "" {
		params.Add("recipient", p.Recipient)
	}
	if p.Account != "" {
		params.Add("account", p.Account)
	}
	if p.Status != "" {
		params.Add("status", p.Status)
	}

	return params
}
