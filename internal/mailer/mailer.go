// Package mailer composes and sends the daily word email over SMTP.
//
// Each recipient gets their OWN message (no shared To: list — subscribers
// should never see each other's addresses), but all messages for one run
// share a single authenticated SMTP session. go-mail's Dialer gives us
// exactly that split: Dial() once, then send any number of messages on the
// returned SendCloser.
package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	mail "github.com/go-mail/mail"
)

// Config holds the SMTP settings. All five fields are required for sending;
// if any is missing the mailer logs a skip and does nothing, so an
// unconfigured deployment still serves HTTP normally.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string // From: address
}

// Complete reports whether every required SMTP setting is present.
func (c Config) Complete() bool {
	return c.Host != "" && c.Port != 0 && c.Username != "" && c.Password != "" && c.Sender != ""
}

// Content is the payload rendered into both email bodies.
type Content struct {
	Title       string
	Description string
	Example     string
}

// Mailer sends word-of-the-day emails.
//
// The dial field exists so tests can substitute a fake SMTP session and
// capture messages. Production construction (New) always wires it to a
// real go-mail Dialer.
type Mailer struct {
	cfg    Config
	logger *slog.Logger
	dial   func() (mail.SendCloser, error)
}

// New creates a Mailer for the given SMTP configuration.
func New(cfg Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		dial: func() (mail.SendCloser, error) {
			return mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password).Dial()
		},
	}
}

// Send delivers one message per recipient under a single SMTP session.
//
// FAILURE MODEL (deliberately simple):
//   - SMTP not configured → skip everything, log, return nil. Not an error.
//   - Dial/auth failure   → nothing sent, error returned.
//   - Send failure        → remaining recipients are NOT attempted; the
//     first error aborts the run. There are no retries — the job fires
//     again tomorrow anyway.
//
// The only caller is the background job, which logs the returned error and
// moves on; nothing upstream ever waits on this.
func (m *Mailer) Send(subject string, content Content, recipients []string) error {
	if !m.cfg.Complete() {
		m.logger.Warn("SMTP not configured, skipping email send",
			slog.Int("recipients", len(recipients)),
		)
		return nil
	}

	textBody, err := renderText(content)
	if err != nil {
		return fmt.Errorf("rendering plain-text body: %w", err)
	}
	htmlBody, err := renderHTML(content)
	if err != nil {
		return fmt.Errorf("rendering HTML body: %w", err)
	}

	m.logger.Info("starting email send",
		slog.String("subject", subject),
		slog.Int("recipients", len(recipients)),
	)

	sc, err := m.dial()
	if err != nil {
		return fmt.Errorf("dialing SMTP server %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	defer sc.Close()

	for _, recipient := range recipients {
		msg := mail.NewMessage()
		msg.SetHeader("From", m.cfg.Sender)
		msg.SetHeader("To", recipient)
		msg.SetHeader("Subject", subject)
		// multipart/alternative: clients that can render HTML prefer it,
		// everything else falls back to the plain text part.
		msg.SetBody("text/plain", textBody)
		msg.AddAlternative("text/html", htmlBody)

		if err := mail.Send(sc, msg); err != nil {
			return fmt.Errorf("sending to %s: %w", recipient, err)
		}
	}

	m.logger.Info("email send finished", slog.Int("sent", len(recipients)))
	return nil
}

// The two body templates render the same content. The plain-text version is
// a text/template (no escaping); the HTML version is an html/template so
// word content is escaped properly — descriptions come from an API that
// anyone on the allow-listed frontends can call.

var textTemplate = texttemplate.Must(texttemplate.New("plain").Parse(`Word of the Day: {{.Title}}
===================================

Description:
{{.Description}}

Example:
"{{.Example}}"

Have a great day!
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(`<html>
  <head></head>
  <body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 20px auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 8px; background-color: #f9f9f9;">
      <h1 style="font-size: 24px; color: #1a1a1a; border-bottom: 2px solid #eee; padding-bottom: 10px;">Word of the Day</h1>
      <h2 style="font-size: 28px; color: #0056b3; margin-top: 20px;">{{.Title}}</h2>

      <h3 style="font-size: 16px; color: #333; margin-top: 25px; border-bottom: 1px solid #eee; padding-bottom: 5px;">DESCRIPTION</h3>
      <p style="font-size: 16px;">{{.Description}}</p>

      <h3 style="font-size: 16px; color: #333; margin-top: 25px; border-bottom: 1px solid #eee; padding-bottom: 5px;">EXAMPLE</h3>
      <blockquote style="border-left: 4px solid #0056b3; padding-left: 15px; margin-left: 0; font-style: italic; color: #555;">
        {{.Example}}
      </blockquote>

      <hr style="border: none; border-top: 1px solid #eee; margin-top: 30px;">
      <p style="color: #888; font-size: 12px; text-align: center;">Have a great day!</p>
    </div>
  </body>
</html>
`))

func renderText(content Content) (string, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(content Content) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, content); err != nil {
		return "", err
	}
	return buf.String(), nil
}
