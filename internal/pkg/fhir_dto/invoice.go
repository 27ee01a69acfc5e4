package fhir_dto

type Invoice struct {
	ResourceType        string                  `json:"resourceType"`
	ID                  string                  `json:"id,omitempty"`
	Meta                *Meta                   `json:"meta,omitempty"`
	Extension           []Extension             `json:"extension,omitempty"`
	Status              string                  `json:"status,omitempty"`
	Type                *CodeableConcept        `json:"type,omitempty"`
	Subject             *Reference              `json:"subject,omitempty"`
	Recipient           *Reference              `json:"recipient,omitempty"`
	Date                string                  `json:"date,omitempty"`
	Issuer              *Reference              `json:"issuer,omitempty"`
	Account             *Reference              `json:"account,omitempty"`
	LineItem            []InvoiceLineItem       `json:"lineItem,omitempty"`
	TotalPriceComponent []InvoicePriceComponent `json:"totalPriceComponent,omitempty"`
	TotalNet            *Money                  `json:"totalNet,omitempty"`
	TotalGross          *Money                  `json:"totalGross,omitempty"`
}

type InvoiceLineItem struct {
	Sequence                  int                     `json:"sequence,omitempty"`
	ChargeItemReference       *Reference              `json:"chargeItemReference,omitempty"`
	ChargeItemCodeableConcept *CodeableConcept        `json:"chargeItemCodeableConcept,omitempty"`
	PriceComponent            []InvoicePriceComponent `json:"priceComponent,omitempty"`
}

type InvoicePriceComponent struct {
	Type   string           `json:"type,omitempty"`
	Code   *CodeableConcept `json:"code,omitempty"`
	Factor *float64         `json:"factor,omitempty"`
	Amount *Money           `json:"amount,omitempty"`
}
