package fhir_dto

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Type      string `json:"type,omitempty"`
	Display   string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Version string `json:"version,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type Meta struct {
	VersionId   string   `json:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Source      string   `json:"source,omitempty"`
	Profile     []string `json:"profile,omitempty"`
}

type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency,omitempty"`
}

// Extension holds one FHIR extension entry. Only the value[x] shapes the
// invoice extensions use are modelled; nested extensions carry the metadata bag.
type Extension struct {
	Url           string      `json:"url"`
	ValueString   *string     `json:"valueString,omitempty"`
	ValueCode     *string     `json:"valueCode,omitempty"`
	ValueUrl      *string     `json:"valueUrl,omitempty"`
	ValueUri      *string     `json:"valueUri,omitempty"`
	ValueDateTime *string     `json:"valueDateTime,omitempty"`
	ValueDecimal  *float64    `json:"valueDecimal,omitempty"`
	ValueInteger  *int64      `json:"valueInteger,omitempty"`
	ValueBoolean  *bool       `json:"valueBoolean,omitempty"`
	ValueMoney    *Money      `json:"valueMoney,omitempty"`
	Extension     []Extension `json:"extension,omitempty"`
}
