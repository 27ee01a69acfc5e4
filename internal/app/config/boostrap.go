package config

import (
	"context"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Logger          *zap.Logger
	RabbitMQ        *amqp091.Connection
	RabbitMQChannel *amqp091.Channel
	Minio           *minio.Client
	InternalConfig  *InternalConfig
	DriverConfig    *DriverConfig
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.RabbitMQChannel != nil {
		err := b.RabbitMQChannel.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ channel")
	}

	if b.RabbitMQ != nil {
		err := b.RabbitMQ.Close()
		if err != nil {
			return err
		}
		log.Println("Successfully closing RabbitMQ")
	}

	// Sync on stdout/stderr returns EINVAL on some platforms.
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
