package contracts

import (
	"context"
	"petcare-billing-service/internal/pkg/dto/requests"
)

type InvoicePublisher interface {
	Publish(ctx context.Context, event *requests.InvoiceEvent) error
}
