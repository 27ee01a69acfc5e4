package storage

import (
	"bytes"
	"context"
	"encoding/hex"
	"petcare-billing-service/internal/app/contracts"
	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/exceptions"
	"petcare-billing-service/internal/pkg/fhir_dto"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const archiveVersionLayout = "20060102T150405.000000000Z"

type minioInvoiceArchive struct {
	Client     ObjectPutter
	BucketName string
	Log        *zap.Logger
}

func NewMinioInvoiceArchive(client ObjectPutter, bucketName string, logger *zap.Logger) contracts.InvoiceArchive {
	return &minioInvoiceArchive{
		Client:     client,
		BucketName: bucketName,
		Log:        logger,
	}
}

// Store writes the document under invoices/<id>/<version>.json and returns the
// object key. The version is taken from meta.lastUpdated when present.
func (m *minioInvoiceArchive) Store(ctx context.Context, invoice *fhir_dto.Invoice) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(invoice)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := archiveObjectName(invoice)
	_, err = m.Client.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationFHIRJSON,
		UserMetadata: map[string]string{
			constvars.InvoiceArchiveMetadataInvoiceID: invoice.ID,
			constvars.InvoiceArchiveMetadataDigest:    contentDigest(body),
		},
	})
	if err != nil {
		m.Log.Error("minioInvoiceArchive.Store error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, m.BucketName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioInvoiceArchive.Store succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoice.ID),
		zap.String("object_name", objectName),
	)
	return objectName, nil
}

func archiveObjectName(invoice *fhir_dto.Invoice) string {
	version := time.Now().UTC()
	if invoice.Meta != nil {
		if lastUpdated, err := time.Parse(time.RFC3339, invoice.Meta.LastUpdated); err == nil {
			version = lastUpdated.UTC()
		}
	}

	var sb strings.Builder
	sb.WriteString(constvars.InvoiceArchiveObjectPrefix)
	sb.WriteString(invoice.ID)
	sb.WriteString("/")
	sb.WriteString(version.Format(archiveVersionLayout))
	sb.WriteString(constvars.InvoiceArchiveObjectSuffix)
	return sb.String()
}

// contentDigest returns the BLAKE2b-256 digest of body, prefixed with the algorithm.
func contentDigest(body []byte) string {
	sum := blake2b.Sum256(body)
	return constvars.InvoiceArchiveDigestPrefix + hex.EncodeToString(sum[:])
}
