package storage

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"

	"petcare-billing-service/internal/pkg/constvars"
	"petcare-billing-service/internal/pkg/exceptions"
	"petcare-billing-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

type putCall struct {
	bucketName  string
	objectName  string
	body        []byte
	size        int64
	contentType string
	metadata    map[string]string
}

type fakeObjectPutter struct {
	calls []putCall
	err   error
}

func (f *fakeObjectPutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.calls = append(f.calls, putCall{
		bucketName:  bucketName,
		objectName:  objectName,
		body:        body,
		size:        objectSize,
		contentType: opts.ContentType,
		metadata:    opts.UserMetadata,
	})
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestMinioInvoiceArchiveStore(t *testing.T) {
	t.Run("Stores the document under a versioned key", func(t *testing.T) {
		putter := &fakeObjectPutter{}
		archive := NewMinioInvoiceArchive(putter, "invoices", zap.NewNop())

		invoice := &fhir_dto.Invoice{
			ResourceType: constvars.ResourceInvoice,
			ID:           "inv-1",
			Status:       constvars.FhirInvoiceStatusIssued,
			Meta:         &fhir_dto.Meta{LastUpdated: "2024-03-02T15:04:05.5+02:00"},
		}

		key, err := archive.Store(context.Background(), invoice)
		require.NoError(t, err)
		assert.Equal(t, "invoices/inv-1/20240302T130405.500000000Z.json", key)

		require.Len(t, putter.calls, 1)
		call := putter.calls[0]
		assert.Equal(t, "invoices", call.bucketName)
		assert.Equal(t, key, call.objectName)
		assert.Equal(t, int64(len(call.body)), call.size)
		assert.Equal(t, constvars.MIMEApplicationFHIRJSON, call.contentType)
		assert.Equal(t, "inv-1", call.metadata[constvars.InvoiceArchiveMetadataInvoiceID])
		sum := blake2b.Sum256(call.body)
		assert.Equal(t, "blake2b-256:"+hex.EncodeToString(sum[:]), call.metadata[constvars.InvoiceArchiveMetadataDigest])

		var stored fhir_dto.Invoice
		require.NoError(t, json.Unmarshal(call.body, &stored))
		assert.Equal(t, "inv-1", stored.ID)
		assert.Equal(t, constvars.FhirInvoiceStatusIssued, stored.Status)
	})

	t.Run("Uses the current time without meta", func(t *testing.T) {
		putter := &fakeObjectPutter{}
		archive := NewMinioInvoiceArchive(putter, "invoices", zap.NewNop())

		key, err := archive.Store(context.Background(), &fhir_dto.Invoice{ID: "inv-2"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "invoices/inv-2/"))
		assert.True(t, strings.HasSuffix(key, ".json"))
	})

	t.Run("Wraps storage errors", func(t *testing.T) {
		putter := &fakeObjectPutter{err: errors.New("access denied")}
		archive := NewMinioInvoiceArchive(putter, "invoices", zap.NewNop())

		_, err := archive.Store(context.Background(), &fhir_dto.Invoice{ID: "inv-3"})
		customErr, ok := exceptions.AsCustomError(err)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
		assert.Contains(t, customErr.DevMessage, "invoices")
		assert.Contains(t, customErr.DevMessage, "access denied")
	})
}
