package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
)

// maxPending - сколько неподтверждённых сообщений помнит одна группа; самые старые вытесняются
const maxPending = 256

// Reader - часть kafka.Reader, нужная консьюмеру; подменяется в тестах
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Writer - часть kafka.Writer, нужная продюсеру
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type readerFactory func(topic, group string) Reader

var _ repository.EnquiryStream = (*EnquiryStream)(nil)

// EnquiryStream - события о заявках в Kafka топике.
// ID события = "partition-offset", ключ сообщения = id заявки.
type EnquiryStream struct {
	topic     string
	writer    Writer
	newReader readerFactory
	logger    *zap.Logger

	mu      sync.Mutex
	readers map[string]Reader
	pending map[string]*groupPending
}

// groupPending - неподтверждённые сообщения одной группы в порядке доставки
type groupPending struct {
	msgs  map[string]kafka.Message
	order []string
}

// NewEnquiryStream создает очередь событий заявок в топике cfg.EnquiryTopic
func NewEnquiryStream(cfg *config.EventsConfig, logger *zap.Logger) *EnquiryStream {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	factory := func(topic, group string) Reader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   topic,
			GroupID: group,
			// оффсеты коммитятся вручную в Ack
			CommitInterval: 0,
			MinBytes:       1,
			MaxBytes:       10e6,
			MaxWait:        time.Second,
		})
	}
	return newEnquiryStream(cfg.EnquiryTopic, writer, factory, logger)
}

func newEnquiryStream(topic string, writer Writer, factory readerFactory, logger *zap.Logger) *EnquiryStream {
	return &EnquiryStream{
		topic:     topic,
		writer:    writer,
		newReader: factory,
		logger:    logger.With(zap.String("topic", topic)),
		readers:   make(map[string]Reader),
		pending:   make(map[string]*groupPending),
	}
}

// PublishEnquiryCreated пишет событие в топик с ключом по id заявки
func (s *EnquiryStream) PublishEnquiryCreated(ctx context.Context, event domain.EnquiryCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal enquiry event: %w", err)
	}

	msg := kafka.Message{
		Topic: s.topic,
		Key:   []byte(strconv.FormatInt(event.Enquiry.ID, 10)),
		Value: data,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.logger.Error("Failed to publish enquiry event",
			zap.Int64("enquiry_id", event.Enquiry.ID),
			zap.Error(err))
		return fmt.Errorf("publish enquiry event: %w", err)
	}

	s.logger.Info("Enquiry event published", zap.Int64("enquiry_id", event.Enquiry.ID))
	return nil
}

// EnsureGroup - в Kafka группа появляется при первом подключении консьюмера
func (s *EnquiryStream) EnsureGroup(_ context.Context, group string) error {
	s.logger.Debug("Kafka consumer group is created on join", zap.String("group", group))
	return nil
}

// Consume читает топик в рамках группы до отмены ctx
func (s *EnquiryStream) Consume(ctx context.Context, group, consumer string) (<-chan domain.EnquiryDelivery, error) {
	reader := s.newReader(s.topic, group)

	s.mu.Lock()
	s.readers[group] = reader
	s.pending[group] = &groupPending{msgs: make(map[string]kafka.Message)}
	s.mu.Unlock()

	out := make(chan domain.EnquiryDelivery, 10)
	logger := s.logger.With(zap.String("group", group), zap.String("consumer", consumer))

	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.readers, group)
			delete(s.pending, group)
			s.mu.Unlock()
			if err := reader.Close(); err != nil {
				logger.Warn("Failed to close Kafka reader", zap.Error(err))
			}
		}()

		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					logger.Info("Enquiry consumer stopped")
					return
				}
				logger.Error("Failed to read enquiry events", zap.Error(err))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
					return
				}
				continue
			}

			id := messageID(msg)
			if evicted := s.track(group, id, msg); evicted != "" {
				logger.Warn("Dropping unacked enquiry event", zap.String("message_id", evicted))
			}

			select {
			case out <- domain.DecodeEnquiryDelivery(id, msg.Value):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Ack коммитит оффсет события. Неподтверждённые сообщения той же партиции
// с меньшим оффсетом коммит покрывает, поэтому они забываются.
func (s *EnquiryStream) Ack(ctx context.Context, group, id string) error {
	s.mu.Lock()
	reader := s.readers[group]
	gp := s.pending[group]
	var (
		msg kafka.Message
		ok  bool
	)
	if gp != nil {
		msg, ok = gp.msgs[id]
	}
	s.mu.Unlock()

	if reader == nil || gp == nil {
		return fmt.Errorf("no active consumer for group %s", group)
	}
	if !ok {
		return fmt.Errorf("unknown message id %s", id)
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		s.logger.Error("Failed to commit Kafka offset",
			zap.String("message_id", id),
			zap.Error(err))
		return fmt.Errorf("commit %s: %w", id, err)
	}

	s.mu.Lock()
	gp.settle(msg)
	s.mu.Unlock()
	return nil
}

// Close закрывает продюсер
func (s *EnquiryStream) Close() error {
	return s.writer.Close()
}

// pendingCount - число неподтверждённых сообщений группы
func (s *EnquiryStream) pendingCount(group string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gp := s.pending[group]; gp != nil {
		return len(gp.msgs)
	}
	return 0
}

// track запоминает сообщение до Ack и возвращает id вытесненного, если лимит превышен
func (s *EnquiryStream) track(group, id string, msg kafka.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	gp := s.pending[group]
	if gp == nil {
		return ""
	}
	gp.msgs[id] = msg
	gp.order = append(gp.order, id)

	for len(gp.msgs) > maxPending && len(gp.order) > 0 {
		oldest := gp.order[0]
		gp.order = gp.order[1:]
		if _, ok := gp.msgs[oldest]; ok {
			delete(gp.msgs, oldest)
			return oldest
		}
	}
	return ""
}

// settle убирает закоммиченное сообщение и всё, что до него в той же партиции
func (gp *groupPending) settle(committed kafka.Message) {
	kept := gp.order[:0]
	for _, id := range gp.order {
		m, ok := gp.msgs[id]
		if !ok {
			continue
		}
		if m.Partition == committed.Partition && m.Offset <= committed.Offset {
			delete(gp.msgs, id)
			continue
		}
		kept = append(kept, id)
	}
	gp.order = kept
}

func messageID(msg kafka.Message) string {
	return strconv.Itoa(msg.Partition) + "-" + strconv.FormatInt(msg.Offset, 10)
}
