package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/jesuansito/pymatgen-db/internal/types"
)

// EmailConfig holds SMTP delivery settings for a rendered report.
type EmailConfig struct {
	From    string
	To      []string
	Server  string
	Port    int
	Subject string
}

// ParseEmailSpec decodes the inline command-line form
// sender:recipient[,recipient...][:server[:port]].
func ParseEmailSpec(spec string) (*EmailConfig, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return nil, fmt.Errorf("%w: email spec %q is not sender:recipient[,recipient...][:server[:port]]",
			types.ErrConfiguration, spec)
	}

	cfg := &EmailConfig{
		From:   strings.TrimSpace(parts[0]),
		Server: "localhost",
	}
	for _, r := range strings.Split(parts[1], ",") {
		if r = strings.TrimSpace(r); r != "" {
			cfg.To = append(cfg.To, r)
		}
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, fmt.Errorf("%w: email spec %q needs a sender and at least one recipient",
			types.ErrConfiguration, spec)
	}
	if len(parts) >= 3 && strings.TrimSpace(parts[2]) != "" {
		cfg.Server = strings.TrimSpace(parts[2])
	}
	if len(parts) == 4 {
		port, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: bad SMTP port %q in email spec", types.ErrConfiguration, parts[3])
		}
		cfg.Port = port
	}
	return cfg, nil
}

// Delivery writes a rendered report to standard output, or emails it when
// an email configuration is present. The transfer MIME type is the
// formatter's declared property. A send that reaches zero recipients is
// logged as a delivery failure but never escalated: the run's exit status
// does not depend on email delivery.
type Delivery struct {
	Out io.Writer
	Log *zap.Logger
}

// Deliver sends or prints the rendered text.
func (d *Delivery) Deliver(ctx context.Context, text string, f Formatter, cfg *EmailConfig) error {
	if cfg == nil {
		_, err := fmt.Fprintln(d.Out, text)
		return err
	}

	n, err := d.send(ctx, text, f.MIMEType(), cfg)
	if err != nil || n < 1 {
		d.Log.Error("report delivery failed",
			zap.String("server", cfg.Server),
			zap.Int("recipients_reached", n),
			zap.Error(err))
		return nil
	}
	d.Log.Info("report delivered",
		zap.String("server", cfg.Server),
		zap.Int("recipients", n),
		zap.String("mime_type", f.MIMEType()))
	return nil
}

// send transmits the message and returns the number of recipients it was
// sent to; zero with an error on transport failure.
func (d *Delivery) send(ctx context.Context, text, mimeType string, cfg *EmailConfig) (int, error) {
	msg := mail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return 0, fmt.Errorf("%w: bad sender %q: %w", types.ErrDelivery, cfg.From, err)
	}
	if err := msg.To(cfg.To...); err != nil {
		return 0, fmt.Errorf("%w: bad recipients %v: %w", types.ErrDelivery, cfg.To, err)
	}
	msg.Subject(cfg.Subject)

	contentType := mail.TypeTextPlain
	if mimeType == MIMEHTML {
		contentType = mail.TypeTextHTML
	}
	msg.SetBodyString(contentType, text)

	opts := []mail.Option{mail.WithTLSPolicy(mail.TLSOpportunistic)}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	client, err := mail.NewClient(cfg.Server, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrDelivery, err)
	}

	d.Log.Debug("connecting to SMTP server",
		zap.String("server", cfg.Server), zap.Int("port", cfg.Port))
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return 0, fmt.Errorf("%w: %w", types.ErrDelivery, err)
	}
	return len(cfg.To), nil
}
