package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	byTopic map[string][]kafka.Message
	err     error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{byTopic: make(map[string][]kafka.Message)}
}

func (f *fakeWriter) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.byTopic[topic] = append(f.byTopic[topic], msgs...)
	return nil
}

func TestDeliverGroupsByTopic(t *testing.T) {
	writer := newFakeWriter()
	d := &Dispatcher{producer: writer}

	messages := []Message{
		{EventID: 1, EventUUID: "11111111-1111-1111-1111-111111111111", EventType: EventNutritionLogged, Topic: "health.nutrition", PartitionKey: "7", Payload: json.RawMessage(`{"a":1}`)},
		{EventID: 2, EventUUID: "22222222-2222-2222-2222-222222222222", EventType: EventCheckinRecorded, Topic: "health.checkins", PartitionKey: "7", Payload: json.RawMessage(`{"b":2}`)},
		{EventID: 3, EventUUID: "33333333-3333-3333-3333-333333333333", EventType: EventNutritionLogged, Topic: "health.nutrition", PartitionKey: "9", Payload: json.RawMessage(`{"c":3}`)},
	}
	require.NoError(t, d.deliver(context.Background(), messages))

	require.Len(t, writer.byTopic["health.nutrition"], 2)
	require.Len(t, writer.byTopic["health.checkins"], 1)
	require.Equal(t, []byte("7"), writer.byTopic["health.nutrition"][0].Key)
	require.JSONEq(t, `{"c":3}`, string(writer.byTopic["health.nutrition"][1].Value))

	headers := writer.byTopic["health.nutrition"][0].Headers
	require.Len(t, headers, 1)
	require.Equal(t, "event_id", headers[0].Key)
	require.Equal(t, []byte("11111111-1111-1111-1111-111111111111"), headers[0].Value)
}

func TestDeliverPropagatesWriterErrors(t *testing.T) {
	writer := newFakeWriter()
	writer.err = errors.New("broker unreachable")
	d := &Dispatcher{producer: writer}

	err := d.deliver(context.Background(), []Message{
		{EventID: 1, EventType: EventNutritionLogged, Topic: "health.nutrition", Payload: json.RawMessage(`{}`)},
	})
	require.Error(t, err)
}

func TestEventTopicsCoverAllEventTypes(t *testing.T) {
	for _, eventType := range []string{EventQuestionnaireCompleted, EventNutritionLogged, EventCheckinRecorded} {
		topic, ok := eventTopics[eventType]
		require.True(t, ok, eventType)
		require.NotEmpty(t, topic)
	}
}
