package invoices

import (
	"context"
	"petcare-billing-service/internal/app/contracts"
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/dto/requests"
	"petcare-billing-service/internal/pkg/exceptions"
	"petcare-billing-service/internal/pkg/fhir_dto"
	"petcare-billing-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type invoiceUsecase struct {
	InvoiceFhirClient contracts.InvoiceFhirClient
	InvoiceArchive    contracts.InvoiceArchive
	InvoicePublisher  contracts.InvoicePublisher
	Log               *zap.Logger
}

func NewInvoiceUsecase(
	invoiceFhirClient contracts.InvoiceFhirClient,
	invoiceArchive contracts.InvoiceArchive,
	invoicePublisher contracts.InvoicePublisher,
	logger *zap.Logger,
) contracts.InvoiceUsecase {
	return &invoiceUsecase{
		InvoiceFhirClient: invoiceFhirClient,
		InvoiceArchive:    invoiceArchive,
		InvoicePublisher:  invoicePublisher,
		Log:               logger,
	}
}

// ParseResource decodes a raw FHIR Invoice document. Documents that are not
// valid JSON or carry a different resourceType are rejected.
func (uc *invoiceUsecase) ParseResource(raw []byte) (*models.Invoice, error) {
	var resource fhir_dto.Invoice
	if err := json.Unmarshal(raw, &resource); err != nil {
		uc.Log.Error("invoiceUsecase.ParseResource error parsing document",
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return uc.DecodeResource(&resource)
}

func (uc *invoiceUsecase) DecodeResource(resource *fhir_dto.Invoice) (*models.Invoice, error) {
	if resource.ResourceType != constvars.ResourceInvoice {
		uc.Log.Error("invoiceUsecase.DecodeResource unexpected resource type",
			zap.String(constvars.LoggingResourceKey, resource.ResourceType),
		)
		return nil, exceptions.ErrInvalidFHIRResourceType(constvars.ResourceInvoice, resource.ResourceType)
	}

	invoice := Decode(*resource)
	return &invoice, nil
}

func (uc *invoiceUsecase) EncodeResource(invoice *models.Invoice) (*fhir_dto.Invoice, error) {
	resource := Encode(*invoice)
	return &resource, nil
}

// Publish validates the invoice, writes it to the FHIR server, archives the
// stored document and announces it on the invoice queue. An invoice without an
// id is published under a fresh UUID; the caller's invoice is left untouched
// and the assigned id is read from the returned resource.
func (uc *invoiceUsecase) Publish(ctx context.Context, invoice *models.Invoice) (*fhir_dto.Invoice, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("invoiceUsecase.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := utils.ValidateStruct(invoice); err != nil {
		uc.Log.Error("invoiceUsecase.Publish invalid invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	draft := *invoice
	if lo.FromPtr(draft.ID) == "" {
		draft.ID = lo.ToPtr(uuid.New().String())
	}

	resource := Encode(draft)

	var stored *fhir_dto.Invoice
	err := utils.LogOperation(uc.Log, "invoiceFhirClient.Update", requestID, func() error {
		var err error
		stored, err = uc.InvoiceFhirClient.Update(ctx, &resource)
		return err
	})
	if err != nil {
		return nil, err
	}

	archiveKey, err := uc.InvoiceArchive.Store(ctx, stored)
	if err != nil {
		uc.Log.Error("invoiceUsecase.Publish error archiving invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceIDKey, stored.ID),
			zap.Error(err),
		)
		return nil, err
	}

	event := &requests.InvoiceEvent{
		EventType:  constvars.InvoiceEventPublished,
		InvoiceID:  stored.ID,
		Status:     string(draft.Status),
		ArchiveKey: archiveKey,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Resource:   *stored,
	}
	if err := uc.InvoicePublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("invoiceUsecase.Publish error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceIDKey, stored.ID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, constvars.InvoiceEventPublished, requestID,
		zap.String(constvars.LoggingInvoiceIDKey, stored.ID),
		zap.String(constvars.LoggingStatusKey, stored.Status),
	)
	return stored, nil
}

func (uc *invoiceUsecase) Fetch(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("invoiceUsecase.Fetch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	resource, err := uc.InvoiceFhirClient.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return uc.DecodeResource(resource)
}

func (uc *invoiceUsecase) SearchByAppointment(ctx context.Context, appointmentID string) ([]models.Invoice, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("invoiceUsecase.SearchByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	resources, err := uc.InvoiceFhirClient.Search(ctx, contracts.InvoiceSearchParams{
		Account: utils.BuildReference(constvars.ResourceAppointment, appointmentID),
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]models.Invoice, 0, len(resources))
	for i := range resources {
		invoice, err := uc.DecodeResource(&resources[i])
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}

	uc.Log.Info("invoiceUsecase.SearchByAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(invoices)),
	)
	return invoices, nil
}
