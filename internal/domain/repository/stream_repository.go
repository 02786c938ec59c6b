package repository

import (
	"context"

	"github.com/odc-estimate/internal/domain"
)

// EventPublisher - публикация событий о новых заявках
type EventPublisher interface {
	PublishEnquiryCreated(ctx context.Context, event domain.EnquiryCreatedEvent) error
}

// EnquiryStream - очередь событий о новых заявках (Redis Stream или Kafka топик).
// Имя стрима задаётся при создании реализации.
type EnquiryStream interface {
	EventPublisher

	// EnsureGroup создаёт consumer group, если её ещё нет
	EnsureGroup(ctx context.Context, group string) error

	// Consume доставляет события до отмены ctx, затем закрывает канал
	Consume(ctx context.Context, group, consumer string) (<-chan domain.EnquiryDelivery, error)

	// Ack подтверждает обработку события
	Ack(ctx context.Context, group, id string) error
}
