// Package notifier delivers submission notifications to students by mail.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/config"
	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"gopkg.in/gomail.v2"
)

// Sender delivers composed messages.
type Sender interface {
	Send(messages ...*gomail.Message) error
}

// SMTPSender sends through an SMTP relay, dialing per batch.
type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

func (s *SMTPSender) Send(messages ...*gomail.Message) error {
	return s.dialer.DialAndSend(messages...)
}

// MailWorker consumes attempt.submitted events and mails the student.
// Every message is acked; delivery failures are logged and dropped.
type MailWorker struct {
	sender Sender
	from   string
	logger *slog.Logger
}

// NewMailWorker returns a worker. A nil sender drains events without sending.
func NewMailWorker(sender Sender, from string, logger *slog.Logger) *MailWorker {
	return &MailWorker{
		sender: sender,
		from:   from,
		logger: logger.With("component", "mail_worker"),
	}
}

// Run handles messages until the channel closes or ctx is done.
func (w *MailWorker) Run(ctx context.Context, messages <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			w.handle(msg)
		}
	}
}

func (w *MailWorker) handle(msg *message.Message) {
	defer msg.Ack()

	event, err := events.DecodeAttemptSubmitted(msg.Payload)
	if err != nil {
		w.logger.Warn("Skipping undecodable notification", "message_uuid", msg.UUID, "error", err)
		return
	}

	if w.sender == nil {
		w.logger.Debug("Mail disabled, dropping notification", "attempt_id", event.AttemptID)
		return
	}
	if event.StudentEmail == "" {
		w.logger.Debug("Student has no email, skipping notification", "attempt_id", event.AttemptID)
		return
	}

	if err := w.sender.Send(BuildSubmissionMail(w.from, event)); err != nil {
		w.logger.Error("Failed to send submission mail",
			"attempt_id", event.AttemptID,
			"student_id", event.StudentID,
			"error", err)
		return
	}

	w.logger.Info("Submission mail sent", "attempt_id", event.AttemptID, "student_id", event.StudentID)
}

// BuildSubmissionMail composes the plain-text receipt for a submitted attempt.
func BuildSubmissionMail(from string, event *events.AttemptSubmittedEvent) *gomail.Message {
	subject := "Test submitted"
	if event.SubjectName != "" {
		subject = fmt.Sprintf("Test submitted: %s (%s)", event.SubjectName, event.CourseCode)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", event.StudentName)
	fmt.Fprintf(&body, "Your test was submitted on %s.\n", event.SubmittedAt.Format("02 Jan 2006 15:04 MST"))
	fmt.Fprintf(&body, "Score: %d / %d (%.2f%%)\n", event.Score, event.TotalQuestions, event.Percentage)
	if event.IsMalpractice {
		body.WriteString("\nThis attempt was flagged for malpractice and will be reviewed by staff.\n")
	}
	body.WriteString("\nYou can review your answers from the results page.\n")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", event.StudentEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())
	return m
}
