package events

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *NotificationEvent {
	return NewAttemptSubmittedEvent(AttemptSubmittedEvent{
		AttemptID:      "a1",
		TestID:         "t1",
		SubjectName:    "Data Structures",
		StudentID:      "s1",
		StudentName:    "Asha",
		StudentEmail:   "asha@example.org",
		Score:          18,
		TotalQuestions: 25,
		Percentage:     72,
		SubmittedAt:    time.Now(),
	})
}

func TestNewAttemptSubmittedEvent_Envelope(t *testing.T) {
	event := sampleEvent()

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventAttemptSubmitted, event.Type)
	assert.Equal(t, "exam-service", event.Source)
	assert.Equal(t, "1.0", event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotEqual(t, event.ID, sampleEvent().ID)
}

func TestLocalEventPublisher_RoundTrip(t *testing.T) {
	publisher := NewLocalEventPublisher(PublisherConfig{
		TopicName: "notifications",
		Logger:    utils.NewDiscardLogger(),
	})
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := publisher.Subscribe(ctx)
	require.NoError(t, err)

	event := sampleEvent()
	require.NoError(t, publisher.PublishNotificationEvent(ctx, event))

	select {
	case msg := <-messages:
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, string(EventAttemptSubmitted), msg.Metadata.Get("event_type"))

		decoded, err := DecodeAttemptSubmitted(msg.Payload)
		require.NoError(t, err)
		assert.Equal(t, "a1", decoded.AttemptID)
		assert.Equal(t, "asha@example.org", decoded.StudentEmail)
		assert.Equal(t, 18, decoded.Score)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestDecodeAttemptSubmitted_RejectsOtherTypes(t *testing.T) {
	_, err := DecodeAttemptSubmitted([]byte(`{"type":"something.else","data":{}}`))
	assert.Error(t, err)

	_, err = DecodeAttemptSubmitted([]byte(`not json`))
	assert.Error(t, err)
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(utils.NewDiscardLogger())
	ctx := context.Background()

	require.NoError(t, mock.PublishNotificationEvent(ctx, sampleEvent()))
	require.Len(t, mock.GetPublishedEvents(), 1)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())

	mock.Err = assert.AnError
	assert.ErrorIs(t, mock.PublishNotificationEvent(ctx, sampleEvent()), assert.AnError)
}
