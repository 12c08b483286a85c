package rabbitmq

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelMock struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (m *channelMock) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	m.exchange = exchange
	m.key = key
	m.msg = msg
	return m.err
}

func TestPublishMessage_MarshalsAndPublishes(t *testing.T) {
	ch := &channelMock{}

	err := PublishMessage(ch, map[string]string{"action": "auth.sign_up"})
	require.NoError(t, err)

	assert.Equal(t, Exchange, ch.exchange)
	assert.Equal(t, RoutingKey, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(ch.msg.Body, &payload))
	assert.Equal(t, "auth.sign_up", payload["action"])
}

func TestPublishMessage_PublishError(t *testing.T) {
	ch := &channelMock{err: errors.New("channel closed")}

	err := PublishMessage(ch, map[string]string{"action": "auth.sign_in"})
	assert.Error(t, err)
}

func TestPublishMessage_UnmarshalableMessage(t *testing.T) {
	ch := &channelMock{}

	err := PublishMessage(ch, make(chan int))
	assert.Error(t, err)
}
