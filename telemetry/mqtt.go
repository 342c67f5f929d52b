package telemetry

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gekko3d/flycam"
)

type MQTTOptions struct {
	Broker           string
	ClientID         string
	PoseTopic        string
	DiagnosticsTopic string
	ConnectTimeout   time.Duration
}

func DefaultMQTTOptions() MQTTOptions {
	return MQTTOptions{
		Broker:           "tcp://localhost:1883",
		ClientID:         "flycam",
		PoseTopic:        "flycam/pose",
		DiagnosticsTopic: "flycam/diagnostics",
		ConnectTimeout:   5 * time.Second,
	}
}

// publisher is the part of mqtt.Client the publisher needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher sends poses (retained, so late subscribers see the last pose)
// and diagnostics. Publish tokens are not waited on; failures are logged
// from the token's completion.
type MQTTPublisher struct {
	opts   MQTTOptions
	client publisher
	logger flycam.Logger
	close  func()
}

var (
	_ PoseSink           = (*MQTTPublisher)(nil)
	_ flycam.Diagnostics = (*MQTTPublisher)(nil)
)

func DialMQTT(opts MQTTOptions, logger flycam.Logger) (*MQTTPublisher, error) {
	if logger == nil {
		logger = flycam.NewNopLogger()
	}
	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.ConnectTimeout)

	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.ConnectTimeout) {
		return nil, fmt.Errorf("telemetry: mqtt connect %s: timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("telemetry: mqtt connect %s: %w", opts.Broker, err)
	}
	logger.Infof("connected to MQTT broker %s", opts.Broker)

	p := newMQTTPublisher(opts, client, logger)
	p.close = func() { client.Disconnect(250) }
	return p, nil
}

func newMQTTPublisher(opts MQTTOptions, client publisher, logger flycam.Logger) *MQTTPublisher {
	return &MQTTPublisher{opts: opts, client: client, logger: logger}
}

func (p *MQTTPublisher) PublishPose(msg PoseMessage) {
	p.publish(p.opts.PoseTopic, true, msg)
}

func (p *MQTTPublisher) Emit(ev flycam.DiagnosticEvent) {
	p.publish(p.opts.DiagnosticsTopic, false, NewDiagnosticMessage(ev))
}

func (p *MQTTPublisher) publish(topic string, retained bool, v any) {
	if topic == "" {
		return
	}
	payload, err := encode(v)
	if err != nil {
		p.logger.Errorf("mqtt: encode %s: %v", topic, err)
		return
	}
	token := p.client.Publish(topic, 0, retained, payload)
	go func() {
		<-token.Done()
		if err := token.Error(); err != nil {
			p.logger.Warnf("mqtt: publish %s: %v", topic, err)
		}
	}()
}

func (p *MQTTPublisher) Close() {
	if p.close != nil {
		p.close()
	}
}
