package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{Brokers: []string{"localhost:9092"}}.Enabled())
	assert.True(t, Config{Brokers: []string{"localhost:9092"}, Topic: "t"}.Enabled())
}

func TestNew(t *testing.T) {
	assert.IsType(t, Nop{}, New(Config{Topic: "t"}, zap.NewNop()))

	p := New(Config{Brokers: []string{"localhost:9092"}, Topic: "t", MaxAttempts: 1}, zap.NewNop())
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	w, ok := kp.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "t", w.Topic)
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w, topic: "auction-snapshots", logger: zap.NewNop()}

	started := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	event := RunEvent{RunID: "run-1", Records: 42, StartedAt: started, FinishedAt: started.Add(time.Minute)}
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte("run-1"), w.messages[0].Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &got))
	assert.Equal(t, "run-1", got["run_id"])
	assert.Equal(t, float64(42), got["records"])
	assert.Equal(t, "2026-01-02T03:00:00Z", got["started_at"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := &KafkaPublisher{writer: &recordingWriter{err: assert.AnError}, topic: "t", logger: zap.NewNop()}
	assert.ErrorIs(t, p.Publish(context.Background(), RunEvent{RunID: "x"}), assert.AnError)
}
