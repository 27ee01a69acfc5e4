package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const canonicalInvoice = `{
	"parent_id": "parent-1",
	"organization_id": "clinic-1",
	"appointment_id": "appt-1",
	"items": [{"name": "Exam", "quantity": 1, "unit_price": 50, "total": 50}],
	"subtotal": 50,
	"tax_percent": 10,
	"total_amount": 55,
	"currency": "USD",
	"status": "refunded",
	"created_at": "2024-03-01T10:00:00Z",
	"updated_at": "2024-03-01T10:00:00Z"
}`

func TestEncodeDecodeCommands(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOGGER_LEVEL", "error")

	encoded, err := executeCommand(t, canonicalInvoice, "encode")
	require.NoError(t, err)

	var resource fhir_dto.Invoice
	require.NoError(t, json.Unmarshal([]byte(encoded), &resource))
	assert.Equal(t, "Invoice", resource.ResourceType)
	assert.Equal(t, "balanced", resource.Status)
	require.NotNil(t, resource.TotalGross)
	assert.Equal(t, 55.0, resource.TotalGross.Value)

	decoded, err := executeCommand(t, encoded, "decode", "-")
	require.NoError(t, err)

	var invoice models.Invoice
	require.NoError(t, json.Unmarshal([]byte(decoded), &invoice))
	assert.Equal(t, models.InvoiceStatusRefunded, invoice.Status)
	assert.Equal(t, "appt-1", invoice.AppointmentID)
	require.NotNil(t, invoice.TaxTotal)
	assert.True(t, decimal.NewFromInt(5).Equal(*invoice.TaxTotal))
}

func TestDecodeCommandRejectsOtherResources(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOGGER_LEVEL", "error")

	_, err := executeCommand(t, `{"resourceType": "Patient"}`, "decode")
	assert.Error(t, err)
}

func TestFetchCommandRequiresTarget(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("LOGGER_LEVEL", "error")

	_, err := executeCommand(t, "", "fetch")
	assert.EqualError(t, err, "either an invoice id or --appointment is required")
}
