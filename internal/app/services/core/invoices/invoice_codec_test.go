package invoices

import (
	"testing"

	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/fhir_dto"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullInvoice() models.Invoice {
	paidAt := mustTime("2024-03-02T15:04:05Z")
	return models.Invoice{
		ID:             lo.ToPtr("inv-1"),
		ParentID:       "parent-1",
		PatientID:      lo.ToPtr("pet-1"),
		OrganizationID: "clinic-1",
		AppointmentID:  "appt-1",
		Items: []models.InvoiceItem{
			{
				ID:          lo.ToPtr("svc-exam"),
				Name:        "Wellness exam",
				Description: lo.ToPtr("Annual checkup"),
				Quantity:    dec("1"),
				UnitPrice:   dec("60"),
				Total:       dec("60"),
			},
			{
				Name:            "Vaccine",
				Quantity:        dec("2"),
				UnitPrice:       dec("12.5"),
				DiscountPercent: decPtr("10"),
				Total:           dec("22.5"),
			},
		},
		Subtotal:                dec("85"),
		DiscountTotal:           decPtr("2.5"),
		TaxPercent:              decPtr("8"),
		TaxTotal:                decPtr("6.6"),
		TotalAmount:             dec("89.1"),
		Currency:                "USD",
		PaymentCollectionMode:   models.PaymentCollectionModeLink,
		StripeChargeID:          lo.ToPtr("ch_1"),
		StripeReceiptURL:        lo.ToPtr("https://pay.example/receipt/1"),
		StripePaymentIntentID:   lo.ToPtr("pi_1"),
		StripePaymentLinkID:     lo.ToPtr("plink_1"),
		StripeInvoiceID:         lo.ToPtr("in_1"),
		StripeCustomerID:        lo.ToPtr("cus_1"),
		StripeCheckoutSessionID: lo.ToPtr("cs_1"),
		StripeCheckoutURL:       lo.ToPtr("https://pay.example/checkout/1"),
		Status:                  models.InvoiceStatusPaid,
		Metadata: map[string]any{
			"channel": "web",
			"visits":  int64(3),
			"loyal":   true,
			"weight":  4.5,
		},
		PaidAt:    &paidAt,
		CreatedAt: mustTime("2024-03-01T10:00:00Z"),
		UpdatedAt: mustTime("2024-03-02T15:04:05Z"),
	}
}

func TestInvoiceRoundTrip(t *testing.T) {
	t.Run("All optional fields populated", func(t *testing.T) {
		original := fullInvoice()
		decoded := Decode(Encode(original))

		assert.Equal(t, original.ID, decoded.ID)
		assert.Equal(t, original.ParentID, decoded.ParentID)
		assert.Equal(t, original.PatientID, decoded.PatientID)
		assert.Equal(t, original.OrganizationID, decoded.OrganizationID)
		assert.Equal(t, original.AppointmentID, decoded.AppointmentID)
		assert.Equal(t, original.Status, decoded.Status)
		assert.Equal(t, original.Currency, decoded.Currency)
		assert.Equal(t, original.PaymentCollectionMode, decoded.PaymentCollectionMode)

		require.Len(t, decoded.Items, len(original.Items))
		for i, item := range original.Items {
			got := decoded.Items[i]
			assert.Equal(t, item.ID, got.ID, "item %d id", i)
			assert.Equal(t, item.Name, got.Name, "item %d name", i)
			assert.Equal(t, item.Description, got.Description, "item %d description", i)
			assertDecimal(t, item.Quantity.String(), got.Quantity, "item %d quantity", i)
			assertDecimal(t, item.UnitPrice.String(), got.UnitPrice, "item %d unit price", i)
			assertDecimal(t, item.Total.String(), got.Total, "item %d total", i)
			if item.DiscountPercent == nil {
				assert.Nil(t, got.DiscountPercent, "item %d discount percent", i)
			} else {
				assertDecimalPtr(t, item.DiscountPercent.String(), got.DiscountPercent, "item %d discount percent", i)
			}
		}

		assertDecimal(t, "85", decoded.Subtotal)
		assertDecimalPtr(t, "2.5", decoded.DiscountTotal)
		assertDecimalPtr(t, "8", decoded.TaxPercent)
		assertDecimalPtr(t, "6.6", decoded.TaxTotal)
		assertDecimal(t, "89.1", decoded.TotalAmount)

		assert.Equal(t, original.StripeChargeID, decoded.StripeChargeID)
		assert.Equal(t, original.StripeReceiptURL, decoded.StripeReceiptURL)
		assert.Equal(t, original.StripePaymentIntentID, decoded.StripePaymentIntentID)
		assert.Equal(t, original.StripePaymentLinkID, decoded.StripePaymentLinkID)
		assert.Equal(t, original.StripeInvoiceID, decoded.StripeInvoiceID)
		assert.Equal(t, original.StripeCustomerID, decoded.StripeCustomerID)
		assert.Equal(t, original.StripeCheckoutSessionID, decoded.StripeCheckoutSessionID)
		assert.Equal(t, original.StripeCheckoutURL, decoded.StripeCheckoutURL)

		assert.Equal(t, original.Metadata, decoded.Metadata)
		require.NotNil(t, decoded.PaidAt)
		assert.True(t, original.PaidAt.Equal(*decoded.PaidAt))
		assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
		assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
	})

	t.Run("Only mandatory fields populated", func(t *testing.T) {
		original := models.Invoice{
			ParentID:       "parent-1",
			OrganizationID: "clinic-1",
			AppointmentID:  "appt-1",
			Subtotal:       dec("40"),
			TotalAmount:    dec("40"),
			Currency:       "USD",
			Status:         models.InvoiceStatusPending,
		}
		decoded := Decode(Encode(original))

		assert.Nil(t, decoded.DiscountTotal, "discount total should stay absent")
		assert.Nil(t, decoded.TaxTotal, "tax total should stay absent")
		assert.Nil(t, decoded.TaxPercent, "tax percent should stay absent")
		assertDecimal(t, "40", decoded.Subtotal)
		assertDecimal(t, "40", decoded.TotalAmount)
		assert.Nil(t, decoded.ID)
		assert.Nil(t, decoded.PatientID)
		assert.Equal(t, "parent-1", decoded.ParentID)
		assert.Equal(t, models.InvoiceStatusPending, decoded.Status)
		assert.Equal(t, models.PaymentCollectionModeIntent, decoded.PaymentCollectionMode)
		assert.Empty(t, decoded.Items)
	})

	t.Run("Refunded survives the lossy status code", func(t *testing.T) {
		original := fullInvoice()
		original.Status = models.InvoiceStatusRefunded

		resource := Encode(original)
		assert.Equal(t, constvars.FhirInvoiceStatusBalanced, resource.Status)
		assert.Equal(t, models.InvoiceStatusRefunded, Decode(resource).Status)
	})
}

func TestEncodeDecodeExample(t *testing.T) {
	original := models.Invoice{
		ParentID:       "parent-1",
		OrganizationID: "clinic-1",
		AppointmentID:  "appt-1",
		Items: []models.InvoiceItem{
			{Name: "Exam", Quantity: dec("1"), UnitPrice: dec("50"), Total: dec("50")},
		},
		Subtotal:              dec("50"),
		TaxPercent:            decPtr("10"),
		TotalAmount:           dec("55"),
		Currency:              "USD",
		Status:                models.InvoiceStatusPaid,
		PaymentCollectionMode: models.PaymentCollectionModeIntent,
	}

	resource := Encode(original)

	require.NotNil(t, resource.TotalGross)
	assert.Equal(t, 55.0, resource.TotalGross.Value)
	assert.Equal(t, "USD", resource.TotalGross.Currency)
	require.NotNil(t, resource.TotalNet)
	assert.Equal(t, 50.0, resource.TotalNet.Value)

	tax, ok := lo.Find(resource.TotalPriceComponent, func(c fhir_dto.InvoicePriceComponent) bool {
		return c.Type == constvars.FhirMonetaryComponentStatusTax
	})
	require.True(t, ok, "tax component should be emitted")
	require.NotNil(t, tax.Factor)
	assert.Equal(t, 0.1, *tax.Factor)
	require.NotNil(t, tax.Amount)
	assert.Equal(t, 5.0, tax.Amount.Value)

	decoded := Decode(resource)
	assertDecimalPtr(t, "5", decoded.TaxTotal, "tax total should be recomputed")
	assertDecimalPtr(t, "10", decoded.TaxPercent)
	assertDecimal(t, "55", decoded.TotalAmount)
	assertDecimal(t, "50", decoded.Subtotal)
	assert.Nil(t, decoded.DiscountTotal)
	assert.Equal(t, "USD", decoded.Currency)
	assert.Equal(t, models.InvoiceStatusPaid, decoded.Status)
	assert.Equal(t, models.PaymentCollectionModeIntent, decoded.PaymentCollectionMode)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "Exam", decoded.Items[0].Name)
	assertDecimal(t, "50", decoded.Items[0].Total)
}
