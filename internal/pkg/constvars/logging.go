package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingInvoiceIDKey     = "invoice_id"
	LoggingAppointmentIDKey = "appointment_id"
	LoggingResourceKey      = "resource"
	LoggingStatusKey        = "status"
	LoggingCountKey         = "count"
	LoggingURLKey           = "url"
	LoggingBucketKey        = "bucket"
	LoggingQueueKey         = "queue"
)

const (
	LoggingOperationKey = "operation"
	LoggingDurationKey  = "duration"
	LoggingSuccessKey   = "success"
	LoggingEventKey     = "business_event"
)
