package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending         InvoiceStatus = "pending"
	InvoiceStatusAwaitingPayment InvoiceStatus = "awaiting_payment"
	InvoiceStatusPaid            InvoiceStatus = "paid"
	InvoiceStatusFailed          InvoiceStatus = "failed"
	InvoiceStatusCancelled       InvoiceStatus = "cancelled"
	InvoiceStatusRefunded        InvoiceStatus = "refunded"
)

// IsValid reports whether s is one of the known canonical statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusAwaitingPayment, InvoiceStatusPaid,
		InvoiceStatusFailed, InvoiceStatusCancelled, InvoiceStatusRefunded:
		return true
	}
	return false
}

type PaymentCollectionMode string

const (
	PaymentCollectionModeIntent PaymentCollectionMode = "payment_intent"
	PaymentCollectionModeLink   PaymentCollectionMode = "payment_link"
)

// IsValid reports whether m is one of the known collection modes.
func (m PaymentCollectionMode) IsValid() bool {
	return m == PaymentCollectionModeIntent || m == PaymentCollectionModeLink
}

type InvoiceItem struct {
	ID              *string          `json:"id,omitempty"`
	Name            string           `json:"name" validate:"required"`
	Description     *string          `json:"description,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"gte=0"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	// Total is the stored line total. It may differ from
	// quantity*unit_price-discount when it was overridden or rounded.
	Total decimal.Decimal `json:"total"`
}

// Invoice bills one pet-care appointment to a customer. Every amount shares
// Currency.
type Invoice struct {
	ID             *string `json:"id,omitempty"`
	ParentID       string  `json:"parent_id" validate:"required"`
	PatientID      *string `json:"patient_id,omitempty"`
	OrganizationID string  `json:"organization_id" validate:"required"`
	AppointmentID  string  `json:"appointment_id"`

	Items         []InvoiceItem    `json:"items" validate:"dive"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	DiscountTotal *decimal.Decimal `json:"discount_total,omitempty"`
	TaxPercent    *decimal.Decimal `json:"tax_percent,omitempty" validate:"omitempty,gte=0"`
	TaxTotal      *decimal.Decimal `json:"tax_total,omitempty"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	Currency      string           `json:"currency" validate:"required,len=3"`

	PaymentCollectionMode PaymentCollectionMode `json:"payment_collection_mode" validate:"omitempty,oneof=payment_intent payment_link"`

	StripeChargeID          *string `json:"stripe_charge_id,omitempty"`
	StripeReceiptURL        *string `json:"stripe_receipt_url,omitempty"`
	StripePaymentIntentID   *string `json:"stripe_payment_intent_id,omitempty"`
	StripePaymentLinkID     *string `json:"stripe_payment_link_id,omitempty"`
	StripeInvoiceID         *string `json:"stripe_invoice_id,omitempty"`
	StripeCustomerID        *string `json:"stripe_customer_id,omitempty"`
	StripeCheckoutSessionID *string `json:"stripe_checkout_session_id,omitempty"`
	StripeCheckoutURL       *string `json:"stripe_checkout_url,omitempty"`

	Status InvoiceStatus `json:"status" validate:"required,oneof=pending awaiting_payment paid failed cancelled refunded"`
	// Metadata values are expected to be string, number or bool.
	Metadata map[string]any `json:"metadata,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
