package kafka_test

import (
	"context"
	"encoding/json"
	"rental/config"
	"rental/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:   "booking-1",
		Value: map[string]any{"type": "booking.approved", "bookingId": "booking-1"},
	}

	out, err := msg.ToKafkaMessage("rental.bookings")
	require.NoError(t, err)

	assert.Equal(t, "rental.bookings", out.Topic)
	assert.Equal(t, []byte("booking-1"), out.Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Value, &decoded))
	assert.Equal(t, "booking.approved", decoded["type"])
}

func TestMessage_ToKafkaMessageMarshalError(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("topic")
	assert.Error(t, err)
}

func TestNew_DisabledDropsMessages(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "rental.bookings", kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())
}
