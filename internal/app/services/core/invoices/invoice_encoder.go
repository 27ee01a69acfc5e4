package invoices

import (
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/fhir_dto"
	"petcare-billing-service/internal/pkg/utils"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Encode converts a canonical invoice into its FHIR Invoice resource. It never
// fails and does not validate business rules; stored totals are copied as-is.
func Encode(invoice models.Invoice) fhir_dto.Invoice {
	currency := invoice.Currency

	resource := fhir_dto.Invoice{
		ResourceType:        constvars.ResourceInvoice,
		ID:                  lo.FromPtr(invoice.ID),
		Status:              ToFhirInvoiceStatus(invoice.Status),
		Subject:             encodeSubject(invoice),
		Recipient:           encodeReference(constvars.ResourceRelatedPerson, invoice.ParentID),
		Issuer:              encodeReference(constvars.ResourceOrganization, invoice.OrganizationID),
		Account:             encodeReference(constvars.ResourceAppointment, invoice.AppointmentID),
		LineItem:            encodeLineItems(invoice.Items, currency),
		TotalPriceComponent: encodeTotalPriceComponents(invoice),
		TotalNet:            money(invoice.Subtotal.Sub(lo.FromPtr(invoice.DiscountTotal)), currency),
		TotalGross:          money(invoice.TotalAmount, currency),
		Extension:           encodeExtensions(invoice),
	}

	if !invoice.CreatedAt.IsZero() {
		resource.Date = invoice.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !invoice.UpdatedAt.IsZero() {
		resource.Meta = &fhir_dto.Meta{LastUpdated: invoice.UpdatedAt.UTC().Format(time.RFC3339Nano)}
	}

	return resource
}

func encodeSubject(invoice models.Invoice) *fhir_dto.Reference {
	if patientID := lo.FromPtr(invoice.PatientID); patientID != "" {
		return encodeReference(constvars.ResourcePatient, patientID)
	}
	return encodeReference(constvars.ResourceRelatedPerson, invoice.ParentID)
}

func encodeReference(resourceType, id string) *fhir_dto.Reference {
	reference := utils.BuildReference(resourceType, id)
	if reference == "" {
		return nil
	}
	return &fhir_dto.Reference{Reference: reference, Type: resourceType}
}

func encodeLineItems(items []models.InvoiceItem, currency string) []fhir_dto.InvoiceLineItem {
	if len(items) == 0 {
		return nil
	}

	lineItems := make([]fhir_dto.InvoiceLineItem, 0, len(items))
	for i, item := range items {
		code := lo.FromPtr(item.ID)
		if code == "" {
			code = item.Name
		}
		text := lo.FromPtr(item.Description)
		if text == "" {
			text = item.Name
		}

		lineItems = append(lineItems, fhir_dto.InvoiceLineItem{
			Sequence: i + 1,
			ChargeItemCodeableConcept: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{Code: code, Display: item.Name}},
				Text:   text,
			},
			PriceComponent: encodeItemPriceComponents(item, currency),
		})
	}
	return lineItems
}

func encodeItemPriceComponents(item models.InvoiceItem, currency string) []fhir_dto.InvoicePriceComponent {
	components := []fhir_dto.InvoicePriceComponent{{
		Type:   constvars.FhirMonetaryComponentStatusBase,
		Factor: lo.ToPtr(item.Quantity.InexactFloat64()),
		Amount: money(item.UnitPrice, currency),
	}}

	if item.DiscountPercent != nil {
		rate := item.DiscountPercent.Div(hundred)
		components = append(components, fhir_dto.InvoicePriceComponent{
			Type:   constvars.FhirMonetaryComponentStatusDiscount,
			Factor: lo.ToPtr(rate.InexactFloat64()),
			Amount: money(item.UnitPrice.Mul(item.Quantity).Mul(rate), currency),
		})
	}

	return append(components, fhir_dto.InvoicePriceComponent{
		Type:   constvars.FhirMonetaryComponentStatusInformational,
		Amount: money(item.Total, currency),
	})
}

func encodeTotalPriceComponents(invoice models.Invoice) []fhir_dto.InvoicePriceComponent {
	currency := invoice.Currency
	components := []fhir_dto.InvoicePriceComponent{{
		Type:   constvars.FhirMonetaryComponentStatusBase,
		Amount: money(invoice.Subtotal, currency),
	}}

	if invoice.DiscountTotal != nil {
		components = append(components, fhir_dto.InvoicePriceComponent{
			Type:   constvars.FhirMonetaryComponentStatusDiscount,
			Amount: money(*invoice.DiscountTotal, currency),
		})
	}

	if invoice.TaxPercent != nil || invoice.TaxTotal != nil {
		tax := fhir_dto.InvoicePriceComponent{Type: constvars.FhirMonetaryComponentStatusTax}
		if invoice.TaxPercent != nil {
			tax.Factor = lo.ToPtr(invoice.TaxPercent.Div(hundred).InexactFloat64())
		}
		if invoice.TaxTotal != nil {
			tax.Amount = money(*invoice.TaxTotal, currency)
		} else {
			taxable := invoice.Subtotal.Sub(lo.FromPtr(invoice.DiscountTotal))
			tax.Amount = money(taxable.Mul(*invoice.TaxPercent).Div(hundred), currency)
		}
		components = append(components, tax)
	}

	return append(components, fhir_dto.InvoicePriceComponent{
		Type:   constvars.FhirMonetaryComponentStatusInformational,
		Amount: money(invoice.TotalAmount, currency),
	})
}

// encodeExtensions emits one entry per populated optional field, in catalog order.
func encodeExtensions(invoice models.Invoice) []fhir_dto.Extension {
	var extensions []fhir_dto.Extension
	for _, kind := range knownExtensionKinds {
		if ext, ok := encodeExtension(kind, invoice); ok {
			extensions = append(extensions, ext)
		}
	}
	return extensions
}

func encodeExtension(kind ExtensionKind, invoice models.Invoice) (fhir_dto.Extension, bool) {
	switch kind {
	case ExtensionStripeInvoiceID:
		return optionalString(kind, invoice.StripeInvoiceID, stringExtension)
	case ExtensionStripePaymentIntentID:
		return optionalString(kind, invoice.StripePaymentIntentID, stringExtension)
	case ExtensionStripePaymentLinkID:
		return optionalString(kind, invoice.StripePaymentLinkID, stringExtension)
	case ExtensionStripeCustomerID:
		return optionalString(kind, invoice.StripeCustomerID, stringExtension)
	case ExtensionStripeChargeID:
		return optionalString(kind, invoice.StripeChargeID, stringExtension)
	case ExtensionStripeReceiptURL:
		return optionalString(kind, invoice.StripeReceiptURL, urlExtension)
	case ExtensionStripeCheckoutSessionID:
		return optionalString(kind, invoice.StripeCheckoutSessionID, stringExtension)
	case ExtensionStripeCheckoutURL:
		return optionalString(kind, invoice.StripeCheckoutURL, urlExtension)
	case ExtensionPaymentCollectionMode:
		if invoice.PaymentCollectionMode == "" {
			return fhir_dto.Extension{}, false
		}
		return codeExtension(kind, string(invoice.PaymentCollectionMode)), true
	case ExtensionPaidAt:
		if invoice.PaidAt == nil {
			return fhir_dto.Extension{}, false
		}
		return dateTimeExtension(kind, invoice.PaidAt.UTC().Format(time.RFC3339Nano)), true
	case ExtensionInvoiceStatus:
		if invoice.Status == "" {
			return fhir_dto.Extension{}, false
		}
		return codeExtension(kind, string(invoice.Status)), true
	case ExtensionInvoiceMetadata:
		ext := metadataExtension(invoice.Metadata)
		return ext, len(ext.Extension) > 0
	case ExtensionAppointmentID:
		if invoice.AppointmentID == "" {
			return fhir_dto.Extension{}, false
		}
		return stringExtension(kind, invoice.AppointmentID), true
	}
	return fhir_dto.Extension{}, false
}

func optionalString(kind ExtensionKind, value *string, build func(ExtensionKind, string) fhir_dto.Extension) (fhir_dto.Extension, bool) {
	if value == nil || *value == "" {
		return fhir_dto.Extension{}, false
	}
	return build(kind, *value), true
}

func money(amount decimal.Decimal, currency string) *fhir_dto.Money {
	return &fhir_dto.Money{Value: amount.InexactFloat64(), Currency: currency}
}
