package main

import (
	"context"
	"os/signal"
	"petcare-billing-service/internal/app/config"
	"petcare-billing-service/internal/app/drivers/messaging"
	"petcare-billing-service/internal/app/drivers/storage"
	"petcare-billing-service/internal/app/models"
	"petcare-billing-service/internal/app/services/core/invoices"
	fhirInvoices "petcare-billing-service/internal/app/services/fhir_spark/invoices"
	"petcare-billing-service/internal/app/services/shared/publisher"
	sharedStorage "petcare-billing-service/internal/app/services/shared/storage"
	"petcare-billing-service/internal/pkg/exceptions"
	"petcare-billing-service/internal/pkg/utils"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish [invoice-file]",
	Short: "Store a canonical invoice on the FHIR server, archive it and announce it",
	Long: `Validate a canonical invoice, write it to the FHIR server, archive the stored
document in the invoice bucket and publish an invoice event on the invoice queue.

Required environment variables:
  FHIR_BASE_URL                  - FHIR server base URL
  RABBITMQ_HOST, RABBITMQ_PORT   - RabbitMQ broker
  MINIO_HOST, MINIO_PORT         - MinIO endpoint
  INVOICE_ARCHIVE_BUCKET_NAME    - Bucket for archived invoices
  INVOICE_PUBLISH_QUEUE          - Queue for invoice events`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var invoice models.Invoice
	if err := json.Unmarshal(raw, &invoice); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = utils.WithRequestID(ctx)

	bootstrap, err := bootstrapPublisher(ctx)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Second*time.Duration(app.InternalConfig.App.ShutdownTimeoutInSeconds),
		)
		defer cancel()
		if err := bootstrap.Shutdown(shutdownCtx); err != nil {
			app.Log.Sugar().Errorf("Error during shutdown: %v", err)
		}
	}()

	invoiceConfig := bootstrap.InternalConfig.Invoice
	usecase := invoices.NewInvoiceUsecase(
		fhirInvoices.NewInvoiceFhirClient(
			bootstrap.InternalConfig.FHIR.BaseUrl,
			bootstrap.InternalConfig.FHIR.RequestTimeout(),
			bootstrap.Logger,
		),
		sharedStorage.NewMinioInvoiceArchive(bootstrap.Minio, invoiceConfig.ArchiveBucketName, bootstrap.Logger),
		publisher.NewInvoicePublisher(bootstrap.RabbitMQChannel, invoiceConfig.PublishQueue, bootstrap.Logger),
		bootstrap.Logger,
	)

	stored, err := usecase.Publish(ctx, &invoice)
	if err != nil {
		return err
	}
	return writeOutput(cmd, stored)
}

func bootstrapPublisher(ctx context.Context) (*config.Bootstrap, error) {
	bootstrap := &config.Bootstrap{
		Logger:         app.Log,
		InternalConfig: app.InternalConfig,
		DriverConfig:   app.DriverConfig,
	}

	bootstrap.Minio = storage.NewMinio(app.DriverConfig)
	err := storage.EnsureBucket(ctx, bootstrap.Minio, app.InternalConfig.Invoice.ArchiveBucketName)
	if err != nil {
		return nil, err
	}

	bootstrap.RabbitMQ = messaging.NewRabbitMQ(app.DriverConfig)
	bootstrap.RabbitMQChannel, err = messaging.NewQueueChannel(bootstrap.RabbitMQ, app.InternalConfig.Invoice.PublishQueue)
	if err != nil {
		bootstrap.RabbitMQ.Close()
		return nil, err
	}
	return bootstrap, nil
}
