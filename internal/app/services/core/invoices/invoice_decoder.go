package invoices

import (
	"math"
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/fhir_dto"
	"petcare-billing-service/internal/pkg/utils"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Decode rebuilds a canonical invoice from a FHIR Invoice resource. Absent
// structure never fails: each derived value walks an ordered fallback chain
// ending in a safe default. Checking resourceType is the caller's job.
func Decode(resource fhir_dto.Invoice) models.Invoice {
	exts := indexInvoiceExtensions(resource.Extension)
	totals := indexPriceComponents(resource.TotalPriceComponent)
	lines := decodeLineItems(resource.LineItem)

	netTotal, hasNet := moneyAmount(resource.TotalNet)
	grossTotal, hasGross := moneyAmount(resource.TotalGross)
	discountComponent, hasDiscountComponent := totals.amount(constvars.FhirMonetaryComponentStatusDiscount)
	taxAmount, hasTaxAmount := totals.amount(constvars.FhirMonetaryComponentStatusTax)
	taxRate, hasTaxRate := totals.factor(constvars.FhirMonetaryComponentStatusTax)

	subtotal := firstOr(decimal.Zero,
		known(totals.amount(constvars.FhirMonetaryComponentStatusBase)),
		known(lines.baseSum, lines.hasBase),
		known(netTotal.Add(discountComponent), hasNet && hasDiscountComponent),
		known(netTotal.Add(lines.discountSum), hasNet && lines.hasDiscount),
		known(lines.totalSum, len(lines.items) > 0),
	)

	discountTotal := optional(firstOf(
		known(discountComponent, hasDiscountComponent),
		func() (decimal.Decimal, bool) {
			diff := subtotal.Sub(netTotal)
			return diff, hasNet && !diff.IsZero()
		},
	))

	netAfterDiscount := firstOr(subtotal.Sub(lo.FromPtr(discountTotal)), known(netTotal, hasNet))

	taxTotal := optional(firstOf(
		known(taxAmount, hasTaxAmount),
		known(taxRate.Mul(netAfterDiscount), hasTaxRate),
	))

	totalAmount := firstOr(subtotal,
		known(grossTotal, hasGross),
		known(totals.amount(constvars.FhirMonetaryComponentStatusInformational)),
		known(netAfterDiscount.Add(lo.FromPtr(taxTotal)), taxTotal != nil || !netAfterDiscount.Equal(subtotal)),
	)

	taxPercent := optional(firstOf(
		known(taxRate.Mul(hundred), hasTaxRate),
		func() (decimal.Decimal, bool) {
			if taxTotal == nil || netAfterDiscount.IsZero() {
				return decimal.Zero, false
			}
			return taxTotal.Div(netAfterDiscount).Mul(hundred), true
		},
	))

	currency := firstOr(constvars.FhirDefaultCurrency,
		moneyCurrency(resource.TotalGross),
		moneyCurrency(resource.TotalNet),
		totals.currency(constvars.FhirMonetaryComponentStatusBase),
		totals.currency(constvars.FhirMonetaryComponentStatusTax),
		totals.currency(constvars.FhirMonetaryComponentStatusDiscount),
		known(lines.firstBaseCurrency, lines.firstBaseCurrency != ""),
	)

	subjectID, subjectKind := decodeReference(resource.Subject)
	recipientID, _ := decodeReference(resource.Recipient)
	issuerID, _ := decodeReference(resource.Issuer)
	accountID, _ := decodeReference(resource.Account)
	appointmentID := lo.FromPtr(exts.stringValue(ExtensionAppointmentID))

	invoice := models.Invoice{
		ID: nonEmpty(&resource.ID),
		ParentID: firstOr("",
			known(recipientID, recipientID != ""),
			known(subjectID, subjectID != "" && subjectKind == constvars.ResourceRelatedPerson),
		),
		OrganizationID: issuerID,
		AppointmentID: firstOr("",
			known(appointmentID, appointmentID != ""),
			known(accountID, accountID != ""),
		),

		Items:         lines.items,
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		TaxPercent:    taxPercent,
		TaxTotal:      taxTotal,
		TotalAmount:   totalAmount,
		Currency:      currency,

		PaymentCollectionMode: decodePaymentCollectionMode(exts),

		StripeChargeID:          exts.stringValue(ExtensionStripeChargeID),
		StripeReceiptURL:        exts.urlValue(ExtensionStripeReceiptURL),
		StripePaymentIntentID:   exts.stringValue(ExtensionStripePaymentIntentID),
		StripePaymentLinkID:     exts.stringValue(ExtensionStripePaymentLinkID),
		StripeInvoiceID:         exts.stringValue(ExtensionStripeInvoiceID),
		StripeCustomerID:        exts.stringValue(ExtensionStripeCustomerID),
		StripeCheckoutSessionID: exts.stringValue(ExtensionStripeCheckoutSessionID),
		StripeCheckoutURL:       exts.urlValue(ExtensionStripeCheckoutURL),

		Status:   decodeStatus(resource.Status, exts),
		Metadata: exts.metadata(),
	}

	if subjectKind == constvars.ResourcePatient && subjectID != "" {
		invoice.PatientID = lo.ToPtr(subjectID)
	}
	if paidAt, ok := parseTime(lo.FromPtr(exts.dateTimeValue(ExtensionPaidAt))); ok {
		invoice.PaidAt = &paidAt
	}
	if createdAt, ok := parseTime(resource.Date); ok {
		invoice.CreatedAt = createdAt
	}
	if resource.Meta != nil {
		if updatedAt, ok := parseTime(resource.Meta.LastUpdated); ok {
			invoice.UpdatedAt = updatedAt
		}
	}

	return invoice
}

// decodeStatus prefers the full-fidelity extension over the lossy status code.
func decodeStatus(code string, exts invoiceExtensions) models.InvoiceStatus {
	return firstOr(models.InvoiceStatusPending,
		func() (models.InvoiceStatus, bool) {
			status := models.InvoiceStatus(lo.FromPtr(exts.codeValue(ExtensionInvoiceStatus)))
			return status, status.IsValid()
		},
		func() (models.InvoiceStatus, bool) {
			return FromFhirInvoiceStatus(code)
		},
	)
}

func decodePaymentCollectionMode(exts invoiceExtensions) models.PaymentCollectionMode {
	mode := models.PaymentCollectionMode(lo.FromPtr(exts.codeValue(ExtensionPaymentCollectionMode)))
	if !mode.IsValid() {
		return models.PaymentCollectionModeIntent
	}
	return mode
}

type decodedLines struct {
	items             []models.InvoiceItem
	baseSum           decimal.Decimal
	hasBase           bool
	discountSum       decimal.Decimal
	hasDiscount       bool
	totalSum          decimal.Decimal
	firstBaseCurrency string
}

func decodeLineItems(lineItems []fhir_dto.InvoiceLineItem) decodedLines {
	lines := decodedLines{}
	if len(lineItems) == 0 {
		return lines
	}

	ordered := orderLineItems(lineItems)
	lines.items = make([]models.InvoiceItem, 0, len(ordered))
	for i, lineItem := range ordered {
		components := indexPriceComponents(lineItem.PriceComponent)
		item, discountAmount, hasDiscount := decodeLineItem(lineItem, components)

		if _, hasBase := components[constvars.FhirMonetaryComponentStatusBase]; hasBase {
			lines.hasBase = true
			lines.baseSum = lines.baseSum.Add(item.UnitPrice.Mul(item.Quantity))
			if i == 0 {
				lines.firstBaseCurrency, _ = components.currency(constvars.FhirMonetaryComponentStatusBase)()
			}
		}
		if hasDiscount {
			lines.hasDiscount = true
			lines.discountSum = lines.discountSum.Add(discountAmount)
		}
		lines.totalSum = lines.totalSum.Add(item.Total)
		lines.items = append(lines.items, item)
	}
	return lines
}

// orderLineItems sorts by sequence when every line carries one, otherwise
// keeps document order.
func orderLineItems(lineItems []fhir_dto.InvoiceLineItem) []fhir_dto.InvoiceLineItem {
	ordered := append([]fhir_dto.InvoiceLineItem(nil), lineItems...)
	if lo.EveryBy(ordered, func(line fhir_dto.InvoiceLineItem) bool { return line.Sequence > 0 }) {
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })
	}
	return ordered
}

func decodeLineItem(lineItem fhir_dto.InvoiceLineItem, components priceComponents) (models.InvoiceItem, decimal.Decimal, bool) {
	quantity := firstOr(decimal.NewFromInt(1), known(components.factor(constvars.FhirMonetaryComponentStatusBase)))
	unitPrice := firstOr(decimal.Zero, known(components.amount(constvars.FhirMonetaryComponentStatusBase)))
	gross := unitPrice.Mul(quantity)

	var discountPercent *decimal.Decimal
	discountAmount := decimal.Zero
	_, hasDiscount := components[constvars.FhirMonetaryComponentStatusDiscount]
	if hasDiscount {
		rate, hasRate := components.factor(constvars.FhirMonetaryComponentStatusDiscount)
		discountAmount = firstOr(decimal.Zero,
			known(components.amount(constvars.FhirMonetaryComponentStatusDiscount)),
			known(gross.Mul(rate), hasRate),
		)
		discountPercent = optional(firstOf(
			known(rate.Mul(hundred), hasRate),
			func() (decimal.Decimal, bool) {
				if gross.IsZero() {
					return decimal.Zero, false
				}
				return discountAmount.Div(gross).Mul(hundred), true
			},
		))
	}

	total := firstOr(gross.Sub(discountAmount),
		known(components.amount(constvars.FhirMonetaryComponentStatusInformational)),
	)

	var coding fhir_dto.Coding
	var text string
	if concept := lineItem.ChargeItemCodeableConcept; concept != nil {
		if len(concept.Coding) > 0 {
			coding = concept.Coding[0]
		}
		text = strings.TrimSpace(concept.Text)
	}

	name := firstOr("",
		known(coding.Display, coding.Display != ""),
		known(coding.Code, coding.Code != ""),
		known(text, text != ""),
	)

	item := models.InvoiceItem{
		Name:            name,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		Total:           total,
	}

	chargeItemID, _ := decodeReference(lineItem.ChargeItemReference)
	item.ID = optional(firstOf(
		known(coding.Code, coding.Code != "" && coding.Code != name),
		known(chargeItemID, chargeItemID != ""),
	))
	if text != "" && text != name {
		item.Description = lo.ToPtr(text)
	}

	return item, discountAmount, hasDiscount
}

// priceComponents indexes components by type; the first of each type wins.
type priceComponents map[string]fhir_dto.InvoicePriceComponent

func indexPriceComponents(components []fhir_dto.InvoicePriceComponent) priceComponents {
	index := make(priceComponents, len(components))
	for _, component := range components {
		if _, seen := index[component.Type]; !seen {
			index[component.Type] = component
		}
	}
	return index
}

func (p priceComponents) amount(componentType string) (decimal.Decimal, bool) {
	component, ok := p[componentType]
	if !ok {
		return decimal.Zero, false
	}
	return moneyAmount(component.Amount)
}

func (p priceComponents) factor(componentType string) (decimal.Decimal, bool) {
	component, ok := p[componentType]
	if !ok || component.Factor == nil {
		return decimal.Zero, false
	}
	return toDecimal(*component.Factor)
}

func (p priceComponents) currency(componentType string) provider[string] {
	return func() (string, bool) {
		component, ok := p[componentType]
		if !ok {
			return "", false
		}
		return moneyCurrency(component.Amount)()
	}
}

func moneyCurrency(money *fhir_dto.Money) provider[string] {
	return func() (string, bool) {
		if money == nil || money.Currency == "" {
			return "", false
		}
		return money.Currency, true
	}
}

func moneyAmount(money *fhir_dto.Money) (decimal.Decimal, bool) {
	if money == nil {
		return decimal.Zero, false
	}
	return toDecimal(money.Value)
}

// toDecimal treats NaN and infinities as absent values.
func toDecimal(value float64) (decimal.Decimal, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(value), true
}

// decodeReference returns the id and resource kind of ref. Kind prefers the
// explicit type over the one embedded in the reference string.
func decodeReference(ref *fhir_dto.Reference) (string, string) {
	if ref == nil {
		return "", ""
	}
	kind := ref.Type
	if kind == "" {
		kind = utils.ParseReferenceType(ref.Reference)
	}
	return utils.ParseReferenceID(ref.Reference), kind
}

func parseTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func optional[T any](value T, ok bool) *T {
	if !ok {
		return nil
	}
	return &value
}
