package exceptions

import (
	"errors"
	"fmt"
	"testing"

	"petcare-billing-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewCustomError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := ErrSendHTTPRequest(cause)

	assert.Equal(t, constvars.StatusBadGateway, err.StatusCode)
	assert.Equal(t, constvars.ErrClientCannotProcessRequest, err.ClientMessage)
	assert.Contains(t, err.DevMessage, "connection refused")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Location.File, "error_test.go", "location should point at the caller")
}

func TestAsCustomError(t *testing.T) {
	wrapped := fmt.Errorf("publish: %w", ErrInvalidFHIRResourceType(constvars.ResourceInvoice, "Patient"))

	customErr, ok := AsCustomError(wrapped)
	require.True(t, ok)
	assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)

	_, ok = AsCustomError(errors.New("plain"))
	assert.False(t, ok)
}

func TestFormatFirstValidationError(t *testing.T) {
	type payload struct {
		Currency string `validate:"required,len=3"`
		Status   string `validate:"oneof=pending paid"`
	}

	validate := validator.New()

	err := validate.Struct(payload{Currency: "US", Status: "paid"})
	assert.Equal(t, "currency must be exactly 3 characters long", FormatFirstValidationError(err))

	err = validate.Struct(payload{Currency: "USD", Status: "overdue"})
	assert.Equal(t, "status must be one of: pending, paid", FormatFirstValidationError(err))

	assert.Equal(t, constvars.ErrClientCannotProcessRequest, FormatFirstValidationError(nil))
}
