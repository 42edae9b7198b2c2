package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// stubClient 只实现发布相关的方法
type stubClient struct {
	mqtt.Client
	sent []published
	err  error
}

func (c *stubClient) IsConnected() bool { return true }

func (c *stubClient) Disconnect(uint) {}

func (c *stubClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, retained: retained, payload: payload.([]byte)})
	return doneToken{err: c.err}
}

func TestMQTTEventServicePublish(t *testing.T) {
	client := &stubClient{}
	svc := &MQTTEventService{Client: client, prefix: "niddo", timeout: time.Second}

	err := svc.Publish(context.Background(), condoVisitorsTopic(3), EventVisitorCreated, map[string]string{"visit_name": "Carlos"})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, "niddo/condos/3/visitors", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.False(t, msg.retained)

	var event struct {
		ID   string            `json:"id"`
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.payload, &event))
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventVisitorCreated, event.Type)
	assert.Equal(t, "Carlos", event.Data["visit_name"])
}

func TestMQTTEventServicePublishError(t *testing.T) {
	client := &stubClient{err: errors.New("not connected")}
	svc := &MQTTEventService{Client: client, prefix: "niddo", timeout: time.Second}

	err := svc.Publish(context.Background(), amenityReservationsTopic(1), EventReservationCreated, nil)
	assert.EqualError(t, err, "not connected")

	// 发布失败不向调用方传播
	publishEvent(context.Background(), svc, amenityReservationsTopic(1), EventReservationCreated, nil)
	assert.Len(t, client.sent, 2)

	svc.Close()
}
