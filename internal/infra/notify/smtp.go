package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/infra/config"
	"github.com/Amlan029/FeedFormly/internal/infra/logger"
)

const (
	verificationSubject = "FeedFormly verification code"
	dialTimeout         = 5 * time.Second
)

var verificationBody = template.Must(template.New("verification").Parse(
	`<h2>Hello {{.Username}},</h2>
<p>Thank you for registering. Please use the following verification code to complete your registration:</p>
<p style="font-size:24px;letter-spacing:4px"><b>{{.Code}}</b></p>
<p>The code expires at {{.ExpiresAt}}. If you did not request this code, please ignore this email.</p>
`))

// Mailer sends verification codes over SMTP, upgrading with STARTTLS when offered.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
	// skip certificate checks, only for local catchers such as MailHog
	InsecureSkipVerify bool
}

func NewMailer(cfg config.SMTPSettings, log *zap.Logger) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   log,
	}
}

func (m *Mailer) SendVerificationCode(ctx context.Context, notice domain.VerificationNotice) error {
	msg, err := m.buildMessage(notice)
	if err != nil {
		return err
	}

	if err := m.send(ctx, notice.Email, msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	m.logger.Info("verification email sent",
		zap.String("username", notice.Username),
		zap.String("email", logger.MaskEmail(notice.Email)),
	)
	return nil
}

func (m *Mailer) buildMessage(notice domain.VerificationNotice) ([]byte, error) {
	var body bytes.Buffer
	if err := verificationBody.Execute(&body, struct {
		Username  string
		Code      string
		ExpiresAt string
	}{
		Username:  notice.Username,
		Code:      notice.Code,
		ExpiresAt: notice.ExpiresAt.UTC().Format(time.RFC1123),
	}); err != nil {
		return nil, fmt.Errorf("render verification email: %w", err)
	}

	var msg bytes.Buffer
	for _, h := range [][2]string{
		{"From", m.from},
		{"To", notice.Email},
		{"Subject", mime.QEncoding.Encode("utf-8", verificationSubject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	} {
		msg.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body.String(), "\n", "\r\n"))

	return msg.Bytes(), nil
}

func (m *Mailer) send(ctx context.Context, to string, msg []byte) error {
	dialer := &net.Dialer{Timeout: dialTimeout}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Quit(); err != nil {
			m.logger.Debug("smtp quit failed", zap.Error(err))
		}
	}()

	if err := c.Hello("localhost"); err != nil {
		return err
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{
			ServerName:         m.host,
			InsecureSkipVerify: m.InsecureSkipVerify,
			MinVersion:         tls.VersionTLS12,
		}); err != nil {
			return err
		}
	}

	if m.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", m.username, m.password, m.host)); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

var _ port.VerificationNotifier = (*Mailer)(nil)
