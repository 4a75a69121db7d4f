package rabbitmq_test

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"testing"

	"productstore/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestNewEvent(t *testing.T) {
	event := rabbitmq.NewEvent("product.created", map[string]any{"id": 1})

	_, err := uuid.Parse(event.ID)
	assert.NoError(t, err)
	assert.Equal(t, "product.created", event.Type)
	assert.False(t, event.OccurredAt.IsZero())

	other := rabbitmq.NewEvent("product.created", nil)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestEncodeEvent(t *testing.T) {
	event := rabbitmq.NewEvent("product.deleted", map[string]any{"id": 3, "name": "Widget"})

	body, err := rabbitmq.EncodeEvent(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, event.ID, decoded["event_id"])
	assert.Equal(t, "product.deleted", decoded["type"])
	assert.Contains(t, decoded, "occurred_at")
	assert.Equal(t, "Widget", decoded["product"].(map[string]any)["name"])
}

func TestEncodeEvent_UnsupportedPayload(t *testing.T) {
	_, err := rabbitmq.EncodeEvent(rabbitmq.NewEvent("product.created", make(chan int)))
	assert.Error(t, err)
}

func TestClient_WithoutChannel(t *testing.T) {
	client := &rabbitmq.Client{}

	assert.Error(t, client.Publish("product", "product.created", []byte(`{}`)))
	assert.Error(t, client.PublishEvent(rabbitmq.NewEvent("product.created", nil)))
	assert.Error(t, client.ConsumeEvents(rabbitmq.LogEvent))
	assert.NoError(t, client.Close())
}

func TestLogEvent_NeverRequeuesMalformedMessages(t *testing.T) {
	assert.NoError(t, rabbitmq.LogEvent(amqp.Delivery{Body: []byte(`not json`)}))
	assert.NoError(t, rabbitmq.LogEvent(amqp.Delivery{Body: []byte(`{"event_id":"x","type":"product.created"}`)}))
}
