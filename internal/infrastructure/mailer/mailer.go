package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/odc-estimate/internal/config"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer отправляет уведомления по SMTP (text + html), реализует repository.Notifier
type Mailer struct {
	addr       string
	auth       smtp.Auth
	from       mail.Address
	recipients []string
	limiter    *rate.Limiter
	send       sendFunc
	logger     *zap.Logger
}

// New создает SMTP-отправителя
func New(cfg *config.MailConfig, logger *zap.Logger) (*Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, eris.New("mailer: SMTP_HOST is required")
	}
	if len(cfg.Recipients) == 0 {
		return nil, eris.New("mailer: NOTIFY_RECIPIENTS is empty")
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Mailer{
		addr:       cfg.SMTPHost + ":" + strconv.Itoa(cfg.SMTPPort),
		auth:       auth,
		from:       mail.Address{Name: cfg.FromName, Address: from},
		recipients: cfg.Recipients,
		limiter:    rate.NewLimiter(limit, 1),
		send:       smtp.SendMail,
		logger:     logger,
	}, nil
}

// Send отправляет письмо всем получателям
func (m *Mailer) Send(ctx context.Context, subject, textBody, htmlBody string) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "mailer: rate limiter")
	}

	msg, err := m.compose(subject, textBody, htmlBody)
	if err != nil {
		return err
	}

	// net/smtp не принимает context, поэтому отправка идёт в горутине
	done := make(chan error, 1)
	go func() {
		done <- m.send(m.addr, m.auth, m.from.Address, m.recipients, msg)
	}()

	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "mailer: send cancelled")
	case err := <-done:
		if err != nil {
			m.logger.Error("Failed to send mail", zap.String("subject", subject), zap.Error(err))
			return eris.Wrap(err, "mailer: send")
		}
	}

	m.logger.Info("Notification sent",
		zap.String("subject", subject),
		zap.Int("recipients", len(m.recipients)))
	return nil
}

func (m *Mailer) compose(subject, textBody, htmlBody string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", textBody},
		{"text/html; charset=UTF-8", htmlBody},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		w, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, eris.Wrap(err, "mailer: create part")
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, eris.Wrap(err, "mailer: write part")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, eris.Wrap(err, "mailer: close multipart")
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.from.String())
	for _, rcpt := range m.recipients {
		fmt.Fprintf(&msg, "To: %s\r\n", rcpt)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&msg, "Message-ID: <%s@odc-estimate>\r\n", uuid.NewString())
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", writer.Boundary())
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}
