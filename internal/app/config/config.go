package config

import (
	"petcare-billing-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                      utils.GetEnvString("APP_ENV", "development"),
			Version:                  utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                 utils.GetEnvString("APP_TIMEZONE", "UTC"),
			ShutdownTimeoutInSeconds: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
		},
		FHIR: AppFHIR{
			BaseUrl:                 utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/fhir"),
			RequestTimeoutInSeconds: utils.GetEnvInt("FHIR_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		Invoice: AppInvoice{
			ArchiveBucketName: utils.GetEnvString("INVOICE_ARCHIVE_BUCKET_NAME", "invoices"),
			PublishQueue:      utils.GetEnvString("INVOICE_PUBLISH_QUEUE", "invoice_events"),
		},
	}
}
