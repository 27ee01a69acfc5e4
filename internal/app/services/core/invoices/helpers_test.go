package invoices

import (
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	return lo.ToPtr(dec(value))
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !dec(expected).Equal(actual) {
		assert.Fail(t, fmt.Sprintf("Not equal decimals:\nexpected: %s\nactual  : %s", expected, actual.String()), msgAndArgs...)
	}
}

func assertDecimalPtr(t *testing.T, expected string, actual *decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.NotNil(t, actual, msgAndArgs...) {
		return
	}
	assertDecimal(t, expected, *actual, msgAndArgs...)
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
