package notification

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/worker"
)

// EnquiryNotificationWorker превращает события о новых заявках в письма
type EnquiryNotificationWorker struct {
	*worker.BaseWorker
	events       repository.EnquiryStream
	notifier     repository.Notifier
	consumerName string
}

// NewEnquiryNotificationWorker создает новый EnquiryNotificationWorker
func NewEnquiryNotificationWorker(
	events repository.EnquiryStream,
	notifier repository.Notifier,
	consumerGroup string,
	logger *zap.Logger,
) *EnquiryNotificationWorker {
	hostname, _ := os.Hostname()

	return &EnquiryNotificationWorker{
		BaseWorker:   worker.NewBaseWorker("enquiry-notification", consumerGroup, logger),
		events:       events,
		notifier:     notifier,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// Run обрабатывает события до отмены ctx
func (w *EnquiryNotificationWorker) Run(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting enquiry notifications",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.events.EnsureGroup(ctx, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("ensure consumer group: %w", err)
	}

	deliveries, err := w.events.Consume(ctx, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("consume enquiry events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() == nil {
					return fmt.Errorf("enquiry event stream closed")
				}
				return nil
			}
			_ = w.handleDelivery(ctx, d)
		}
	}
}

// handleDelivery отправляет письмо по одному событию. Неразобранные события подтверждаются
// и пропускаются, при ошибке отправки событие остаётся неподтверждённым.
func (w *EnquiryNotificationWorker) handleDelivery(ctx context.Context, d domain.EnquiryDelivery) error {
	logger := w.Logger().With(zap.String("message_id", d.ID))

	if d.Err != nil {
		logger.Warn("Skipping malformed enquiry event", zap.Error(d.Err))
		w.ack(ctx, d.ID)
		return d.Err
	}

	enquiryID := zap.Int64("enquiry_id", d.Event.Enquiry.ID)

	email, err := RenderEnquiryEmail(d.Event)
	if err != nil {
		logger.Error("Failed to render enquiry email", enquiryID, zap.Error(err))
		w.ack(ctx, d.ID)
		return err
	}

	if err := w.notifier.Send(ctx, email.Subject, email.Text, email.HTML); err != nil {
		logger.Error("Failed to send enquiry notification", enquiryID, zap.Error(err))
		return fmt.Errorf("send notification: %w", err)
	}

	w.ack(ctx, d.ID)
	logger.Info("Enquiry notification sent", enquiryID)
	return nil
}

func (w *EnquiryNotificationWorker) ack(ctx context.Context, id string) {
	if err := w.events.Ack(ctx, w.ConsumerGroup(), id); err != nil {
		w.Logger().Warn("Failed to ack enquiry event", zap.String("message_id", id), zap.Error(err))
	}
}
