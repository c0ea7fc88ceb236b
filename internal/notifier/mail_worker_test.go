package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) Send(messages ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func submittedMessage(t *testing.T, email string) *message.Message {
	t.Helper()
	event := events.NewAttemptSubmittedEvent(events.AttemptSubmittedEvent{
		AttemptID:      "att-1",
		StudentID:      "stu-1",
		StudentName:    "Asha",
		StudentEmail:   email,
		SubjectName:    "Data Structures",
		CourseCode:     "CS301",
		Score:          1,
		TotalQuestions: 2,
		Percentage:     50,
		IsMalpractice:  true,
		SubmittedAt:    time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	})
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func acked(msg *message.Message) bool {
	select {
	case <-msg.Acked():
		return true
	case <-time.After(time.Second):
		return false
	}
}

func TestMailWorker_SendsReceipt(t *testing.T) {
	sender := &fakeSender{}
	worker := NewMailWorker(sender, "exams@example.com", utils.NewDiscardLogger())

	msg := submittedMessage(t, "asha@example.com")
	worker.handle(msg)

	require.Equal(t, 1, sender.count())
	assert.True(t, acked(msg))

	sent := sender.sent[0]
	assert.Equal(t, []string{"asha@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Test submitted: Data Structures (CS301)"}, sent.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Score: 1 / 2 (50.00%)")
	assert.Contains(t, buf.String(), "malpractice")
}

func TestMailWorker_SkipsAndAcks(t *testing.T) {
	tests := []struct {
		name   string
		sender *fakeSender
		msg    func(t *testing.T) *message.Message
	}{
		{
			name:   "no email",
			sender: &fakeSender{},
			msg:    func(t *testing.T) *message.Message { return submittedMessage(t, "") },
		},
		{
			name:   "garbage payload",
			sender: &fakeSender{},
			msg:    func(t *testing.T) *message.Message { return message.NewMessage(watermill.NewUUID(), []byte("{")) },
		},
		{
			name:   "relay failure",
			sender: &fakeSender{err: errors.New("connection refused")},
			msg:    func(t *testing.T) *message.Message { return submittedMessage(t, "asha@example.com") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker := NewMailWorker(tt.sender, "exams@example.com", utils.NewDiscardLogger())
			msg := tt.msg(t)
			worker.handle(msg)

			assert.Zero(t, tt.sender.count())
			assert.True(t, acked(msg))
		})
	}
}

func TestMailWorker_DisabledSender(t *testing.T) {
	worker := NewMailWorker(nil, "", utils.NewDiscardLogger())
	msg := submittedMessage(t, "asha@example.com")
	worker.handle(msg)
	assert.True(t, acked(msg))
}

func TestMailWorker_RunWithLocalPublisher(t *testing.T) {
	logger := utils.NewDiscardLogger()
	publisher := events.NewLocalEventPublisher(events.PublisherConfig{TopicName: "notifications", Logger: logger})
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	sender := &fakeSender{}
	done := make(chan struct{})
	go func() {
		NewMailWorker(sender, "exams@example.com", logger).Run(ctx, messages)
		close(done)
	}()

	event := events.NewAttemptSubmittedEvent(events.AttemptSubmittedEvent{AttemptID: "att-9", StudentEmail: "bala@example.com"})
	require.NoError(t, publisher.PublishNotificationEvent(ctx, event))

	assert.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
