package repository

import (
	"context"
	"io"
)

// DocumentStore - хранилище файлов отчётов
type DocumentStore interface {
	// Put сохраняет объект и возвращает его ключ
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	Remove(ctx context.Context, key string) error
}

// Notifier отправляет уведомления администраторам
type Notifier interface {
	Send(ctx context.Context, subject, textBody, htmlBody string) error
}
