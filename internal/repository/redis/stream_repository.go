package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
)

const (
	// dataField - поле записи стрима с JSON события
	dataField = "data"
	readBatch = 10
	readBlock = time.Second
)

var _ repository.EnquiryStream = (*EnquiryStream)(nil)

// EnquiryStream - события о заявках в Redis Stream
type EnquiryStream struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewEnquiryStream создает очередь событий заявок поверх стрима stream
func NewEnquiryStream(client *redis.Client, stream string, logger *zap.Logger) *EnquiryStream {
	return &EnquiryStream{
		client: client,
		stream: stream,
		logger: logger.With(zap.String("stream", stream)),
	}
}

// PublishEnquiryCreated добавляет событие в стрим
func (s *EnquiryStream) PublishEnquiryCreated(ctx context.Context, event domain.EnquiryCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal enquiry event: %w", err)
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{dataField: string(data)},
	}).Result()
	if err != nil {
		s.logger.Error("Failed to publish enquiry event",
			zap.Int64("enquiry_id", event.Enquiry.ID),
			zap.Error(err))
		return fmt.Errorf("publish enquiry event: %w", err)
	}

	s.logger.Info("Enquiry event published",
		zap.Int64("enquiry_id", event.Enquiry.ID),
		zap.String("message_id", id))
	return nil
}

// EnsureGroup создаёт consumer group с позиции "$" (только новые события), стрим создаётся при необходимости
func (s *EnquiryStream) EnsureGroup(ctx context.Context, group string) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			s.logger.Debug("Consumer group already exists", zap.String("group", group))
			return nil
		}
		return fmt.Errorf("create consumer group %s: %w", group, err)
	}

	s.logger.Info("Consumer group created", zap.String("group", group))
	return nil
}

// Consume читает новые для группы события (">") блоками по readBatch
func (s *EnquiryStream) Consume(ctx context.Context, group, consumer string) (<-chan domain.EnquiryDelivery, error) {
	out := make(chan domain.EnquiryDelivery, readBatch)
	logger := s.logger.With(zap.String("group", group), zap.String("consumer", consumer))

	go func() {
		defer close(out)

		for ctx.Err() == nil {
			result, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{s.stream, ">"},
				Count:    readBatch,
				Block:    readBlock,
			}).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					break
				}
				logger.Error("Failed to read enquiry events", zap.Error(err))
				select {
				case <-time.After(readBlock):
				case <-ctx.Done():
				}
				continue
			}

			for _, st := range result {
				for _, msg := range st.Messages {
					select {
					case out <- decodeMessage(msg):
					case <-ctx.Done():
						return
					}
				}
			}
		}

		logger.Info("Enquiry consumer stopped")
	}()

	return out, nil
}

// Ack подтверждает событие в группе
func (s *EnquiryStream) Ack(ctx context.Context, group, id string) error {
	if err := s.client.XAck(ctx, s.stream, group, id).Err(); err != nil {
		return fmt.Errorf("ack %s: %w", id, err)
	}
	return nil
}

// decodeMessage - запись без поля data тоже доставляется, чтобы её подтвердили и не держали в PEL
func decodeMessage(msg redis.XMessage) domain.EnquiryDelivery {
	data, ok := msg.Values[dataField].(string)
	if !ok {
		return domain.EnquiryDelivery{ID: msg.ID, Err: fmt.Errorf("message %s has no %q field", msg.ID, dataField)}
	}
	return domain.DecodeEnquiryDelivery(msg.ID, []byte(data))
}
