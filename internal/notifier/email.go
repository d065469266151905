package notifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"
)

// Attachment is a file to attach to a notification email.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// EmailNotifier sends report notifications over SMTP with STARTTLS.
type EmailNotifier struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

// NewEmailNotifier creates a notifier for the given SMTP account.
func NewEmailNotifier(host string, port int, user, password, to string) *EmailNotifier {
	return &EmailNotifier{Host: host, Port: port, User: user, Password: password, To: to}
}

// Configured reports whether credentials and a recipient are present.
// Unconfigured notifiers are skipped rather than treated as an error.
func (n *EmailNotifier) Configured() bool {
	return n.User != "" && n.Password != "" && n.To != ""
}

// Send sends a single HTML email with the given attachments.
func (n *EmailNotifier) Send(subject, htmlBody string, attachments []Attachment) error {
	msg, err := n.buildMessage(subject, htmlBody, attachments)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	auth := smtp.PlainAuth("", n.User, n.Password, n.Host)
	if err := smtp.SendMail(addr, auth, n.User, []string{n.To}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// SendWithRetry sends with exponential backoff retry.
func (n *EmailNotifier) SendWithRetry(ctx context.Context, subject, htmlBody string, attachments []Attachment, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(subject, htmlBody, attachments); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] email send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

func (n *EmailNotifier) buildMessage(subject, htmlBody string, attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", n.User)
	fmt.Fprintf(&buf, "To: %s\r\n", n.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Type", "text/html; charset=utf-8")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	for _, a := range attachments {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Type", a.MIMEType)
		hdr.Set("Content-Transfer-Encoding", "base64")
		hdr.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		part, err := w.CreatePart(hdr)
		if err != nil {
			return nil, err
		}
		enc := base64.StdEncoding.EncodeToString(a.Content)
		// RFC 2045 line length limit.
		for len(enc) > 76 {
			if _, err := fmt.Fprintf(part, "%s\r\n", enc[:76]); err != nil {
				return nil, err
			}
			enc = enc[76:]
		}
		if _, err := fmt.Fprintf(part, "%s\r\n", enc); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
