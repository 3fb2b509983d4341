package ingestion

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"fleet-device-tracker/internal/logger"
	pkgmqtt "fleet-device-tracker/pkg/mqtt"
)

// MQTTIngestionConfig describes the frame topic and MQTT connection
// parameters.
type MQTTIngestionConfig struct {
	ClientConfig *pkgmqtt.Config
	FrameTopic   string
	QoS          byte
}

// MQTTIngestionClient wires raw tracker frames from MQTT into the processor.
type MQTTIngestionClient struct {
	cfg       *MQTTIngestionConfig
	client    *pkgmqtt.Client
	processor *Processor

	mu      sync.Mutex
	started bool
}

// NewMQTTIngestionClient builds a new MQTT client for frame ingestion.
func NewMQTTIngestionClient(cfg *MQTTIngestionConfig, processor *Processor) (*MQTTIngestionClient, error) {
	if cfg == nil || cfg.ClientConfig == nil {
		return nil, errors.New("mqtt ingestion config is not configured")
	}
	if cfg.FrameTopic == "" {
		return nil, errors.New("frame topic is required")
	}
	if processor == nil {
		return nil, errors.New("processor is required")
	}

	return &MQTTIngestionClient{
		cfg:       cfg,
		client:    pkgmqtt.NewClient(cfg.ClientConfig),
		processor: processor,
	}, nil
}

// Start establishes the MQTT connection and subscribes to the frame topic.
func (c *MQTTIngestionClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	if err := c.client.Subscribe(c.cfg.FrameTopic, c.cfg.QoS, c.handleFrame); err != nil {
		c.client.Disconnect()
		return fmt.Errorf("subscribe failed for topic %s: %w", c.cfg.FrameTopic, err)
	}

	logger.Info("Listening for tracker frames",
		zap.String("topic", c.cfg.FrameTopic),
	)

	c.started = true
	return nil
}

// Stop unsubscribes and disconnects from the broker.
func (c *MQTTIngestionClient) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	if err := c.client.Unsubscribe(c.cfg.FrameTopic); err != nil {
		logger.Warn("Failed to unsubscribe from frame topic", zap.Error(err))
	}

	c.client.Disconnect()
	c.started = false
}

func (c *MQTTIngestionClient) handleFrame(topic string, payload []byte) {
	c.processor.Enqueue(string(payload))
}
