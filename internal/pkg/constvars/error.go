package constvars

// Validation messages for users, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"len":      "must be exactly %s characters long",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"oneof":    "must be one of: %s",
	"dive":     "is invalid",
}

// Tags whose message needs the validator param injected
var TagsWithParams = map[string]bool{
	"len":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientInvalidInvoiceDocument        = "the invoice document is not valid"
)

// Error messages for developers
const (
	ErrDevCannotParseJSON     = "cannot parse JSON"
	ErrDevCannotMarshalJSON   = "cannot marshal JSON"
	ErrDevValidationFailed    = "validation failed"
	ErrDevCreateHTTPRequest   = "failed to create HTTP request"
	ErrDevSendHTTPRequest     = "failed to send HTTP request"
	ErrDevServerProcess       = "failed to process the request"
	ErrDevInvalidResourceType = "invalid FHIR resource type, expected %s got %q"

	// Spark messages
	ErrDevSparkGetFHIRResource            = "failed to get FHIR %s resource from firely spark"
	ErrDevSparkUpdateFHIRResource         = "failed to update FHIR %s resource on firely spark"
	ErrDevSparkNoDataFHIRResource         = "no FHIR %s resource found on firely spark"
	ErrDevSparkDecodeFHIRResourceResponse = "failed to decode FHIR %s resource response from firely spark"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object on bucket %s"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
)

const (
	ResponseUnknown = "unknown"
)
