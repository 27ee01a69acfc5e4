package invoices

import (
	"testing"

	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusMapping(t *testing.T) {
	forward := map[models.InvoiceStatus]string{
		models.InvoiceStatusPending:         constvars.FhirInvoiceStatusDraft,
		models.InvoiceStatusAwaitingPayment: constvars.FhirInvoiceStatusIssued,
		models.InvoiceStatusPaid:            constvars.FhirInvoiceStatusBalanced,
		models.InvoiceStatusRefunded:        constvars.FhirInvoiceStatusBalanced,
		models.InvoiceStatusFailed:          constvars.FhirInvoiceStatusEnteredInError,
		models.InvoiceStatusCancelled:       constvars.FhirInvoiceStatusCancelled,
	}

	t.Run("Forward map", func(t *testing.T) {
		for status, code := range forward {
			assert.Equal(t, code, ToFhirInvoiceStatus(status), "status %s", status)
		}
		assert.Equal(t, constvars.FhirInvoiceStatusDraft, ToFhirInvoiceStatus(""))
	})

	t.Run("Reverse map inverts every status except refunded", func(t *testing.T) {
		for status, code := range forward {
			decoded, ok := FromFhirInvoiceStatus(code)
			assert.True(t, ok)
			if status == models.InvoiceStatusRefunded {
				assert.Equal(t, models.InvoiceStatusPaid, decoded)
				continue
			}
			assert.Equal(t, status, decoded)
		}
	})

	t.Run("Unknown code", func(t *testing.T) {
		_, ok := FromFhirInvoiceStatus("uncollectible")
		assert.False(t, ok)
	})
}
