package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// 业务事件类型
const (
	EventReservationCreated = "reservation.created"
	EventReservationUpdated = "reservation.updated"
	EventReservationDeleted = "reservation.deleted"
	EventVisitorCreated     = "visitor.created"
	EventVisitorUpdated     = "visitor.updated"
	EventVisitorDeleted     = "visitor.deleted"
)

// Event 推送给门禁设备和前端的业务事件
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// InterfaceEventService 定义事件发布接口
type InterfaceEventService interface {
	Publish(ctx context.Context, topic, eventType string, data interface{}) error
	Close()
}

// NoopEventService 未配置消息代理时丢弃所有事件
type NoopEventService struct{}

func (NoopEventService) Publish(context.Context, string, string, interface{}) error { return nil }

func (NoopEventService) Close() {}

// MQTTEventService 通过MQTT发布事件
type MQTTEventService struct {
	Client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// NewMQTTEventService 连接消息代理，连接失败时返回错误
func NewMQTTEventService(cfg *config.Config) (InterfaceEventService, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	// 多实例部署时客户端ID必须唯一
	opts.SetClientID(fmt.Sprintf("%s-%s", cfg.MQTTClientID, uuid.NewString()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}

	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warning("[MQTT] 连接丢失: %v", err)
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		logger.Info("[MQTT] 已连接到 %s", cfg.MQTTBrokerURL)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timeout", cfg.MQTTBrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.MQTTBrokerURL, err)
	}

	return &MQTTEventService{
		Client:  client,
		prefix:  strings.TrimSuffix(cfg.MQTTTopicPrefix, "/"),
		timeout: 3 * time.Second,
	}, nil
}

// 1 Publish 以 QoS 1 发布事件到 prefix/topic
func (s *MQTTEventService) Publish(ctx context.Context, topic, eventType string, data interface{}) error {
	payload, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	token := s.Client.Publish(s.prefix+"/"+topic, 1, false, payload)
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish %s: timeout", eventType)
	}
	return token.Error()
}

// 2 Close 断开连接
func (s *MQTTEventService) Close() {
	if s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// condoVisitorsTopic 小区访客事件主题，门禁按小区订阅
func condoVisitorsTopic(condoID uint) string {
	return fmt.Sprintf("condos/%d/visitors", condoID)
}

// amenityReservationsTopic 设施预约事件主题
func amenityReservationsTopic(amenityID uint) string {
	return fmt.Sprintf("amenities/%d/reservations", amenityID)
}

// publishEvent 事件发布失败只记录日志，不影响已提交的写操作
func publishEvent(ctx context.Context, events InterfaceEventService, topic, eventType string, data interface{}) {
	if err := events.Publish(ctx, topic, eventType, data); err != nil {
		logger.Warning("发布事件 %s 到 %s 失败: %v", eventType, topic, err)
	}
}
