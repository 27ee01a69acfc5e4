package fhir_dto

type InvoiceBundle struct {
	ResourceType string               `json:"resourceType"`
	ID           string               `json:"id,omitempty"`
	Type         string               `json:"type,omitempty"`
	Total        int                  `json:"total"`
	Entry        []InvoiceBundleEntry `json:"entry,omitempty"`
}

type InvoiceBundleEntry struct {
	FullUrl  string  `json:"fullUrl,omitempty"`
	Resource Invoice `json:"resource"`
}

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Diagnostics string `json:"diagnostics,omitempty"`
}
