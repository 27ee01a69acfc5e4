package invoices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"petcare-billing-service/internal/app/contracts"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/exceptions"
	"petcare-billing-service/internal/pkg/fhir_dto"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type invoiceFhirClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewInvoiceFhirClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.InvoiceFhirClient {
	return &invoiceFhirClient{
		BaseUrl:    baseUrl + "/" + constvars.ResourceInvoice,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *invoiceFhirClient) Search(ctx context.Context, params contracts.InvoiceSearchParams) ([]fhir_dto.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("invoiceFhirClient.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any("params", params),
	)

	searchURL := c.BaseUrl + "?" + params.ToQueryParam().Encode()
	resp, err := c.send(ctx, constvars.MethodGet, searchURL, nil)
	if err != nil {
		c.Log.Error("invoiceFhirClient.Search error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingURLKey, searchURL),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		err := c.outcomeError(resp)
		c.Log.Error("invoiceFhirClient.Search FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusKey, resp.StatusCode),
			zap.Error(err),
		)
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceInvoice)
	}

	var bundle fhir_dto.InvoiceBundle
	err = json.NewDecoder(resp.Body).Decode(&bundle)
	if err != nil {
		c.Log.Error("invoiceFhirClient.Search error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceInvoice)
	}

	invoices := make([]fhir_dto.Invoice, len(bundle.Entry))
	for i, entry := range bundle.Entry {
		invoices[i] = entry.Resource
	}

	c.Log.Info("invoiceFhirClient.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(invoices)),
	)
	return invoices, nil
}

func (c *invoiceFhirClient) FindByID(ctx context.Context, invoiceID string) (*fhir_dto.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("invoiceFhirClient.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	resp, err := c.send(ctx, constvars.MethodGet, c.BaseUrl+"/"+url.PathEscape(invoiceID), nil)
	if err != nil {
		c.Log.Error("invoiceFhirClient.FindByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusNotFound {
		c.Log.Warn("invoiceFhirClient.FindByID invoice not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(c.outcomeError(resp), constvars.ResourceInvoice)
	}
	if resp.StatusCode != constvars.StatusOK {
		err := c.outcomeError(resp)
		c.Log.Error("invoiceFhirClient.FindByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusKey, resp.StatusCode),
			zap.Error(err),
		)
		return nil, exceptions.ErrGetFHIRResource(err, constvars.ResourceInvoice)
	}

	var invoice fhir_dto.Invoice
	err = json.NewDecoder(resp.Body).Decode(&invoice)
	if err != nil {
		c.Log.Error("invoiceFhirClient.FindByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceInvoice)
	}

	c.Log.Info("invoiceFhirClient.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)
	return &invoice, nil
}

// Update writes the invoice with a PUT so the caller-chosen id is kept.
func (c *invoiceFhirClient) Update(ctx context.Context, invoice *fhir_dto.Invoice) (*fhir_dto.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("invoiceFhirClient.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoice.ID),
	)

	body, err := json.Marshal(invoice)
	if err != nil {
		c.Log.Error("invoiceFhirClient.Update error marshaling invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	resp, err := c.send(ctx, constvars.MethodPut, c.BaseUrl+"/"+url.PathEscape(invoice.ID), body)
	if err != nil {
		c.Log.Error("invoiceFhirClient.Update error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		err := c.outcomeError(resp)
		c.Log.Error("invoiceFhirClient.Update FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusKey, resp.StatusCode),
			zap.Error(err),
		)
		return nil, exceptions.ErrUpdateFHIRResource(err, constvars.ResourceInvoice)
	}

	var updated fhir_dto.Invoice
	err = json.NewDecoder(resp.Body).Decode(&updated)
	if err != nil {
		c.Log.Error("invoiceFhirClient.Update error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceInvoice)
	}

	c.Log.Info("invoiceFhirClient.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, updated.ID),
	)
	return &updated, nil
}

func (c *invoiceFhirClient) send(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	return resp, nil
}

// outcomeError turns a non-success response into an error, preferring the
// first OperationOutcome diagnostic when the server sent one.
func (c *invoiceFhirClient) outcomeError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var outcome fhir_dto.OperationOutcome
	if err := json.Unmarshal(bodyBytes, &outcome); err == nil && len(outcome.Issue) > 0 && outcome.Issue[0].Diagnostics != "" {
		return errors.New(outcome.Issue[0].Diagnostics)
	}
	return fmt.Errorf("unexpected status code %d", resp.StatusCode)
}
